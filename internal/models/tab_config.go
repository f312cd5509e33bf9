package models

import "time"

// TabConfig is one record in the tab configuration space. The same Key may
// appear once per (scope, scope owner) pair; resolution picks the record at
// the most specific scope present for a viewer.
//
// ScopeOwnerID is nil only at system scope. SQL unique indexes treat NULLs
// as distinct, so uniqueness of system rows is enforced by the seeder and
// by the engine's exists-check on create, not by the index alone.
type TabConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Key             string    `gorm:"column:tab_key;uniqueIndex:idx_tabs_key_scope_owner;size:100;not null" json:"key"`
	Scope           string    `gorm:"uniqueIndex:idx_tabs_key_scope_owner;size:20;not null;index" json:"scope"`
	ScopeOwnerID    *uint     `gorm:"uniqueIndex:idx_tabs_key_scope_owner" json:"scope_owner_id"`
	Label           string    `gorm:"size:200" json:"label"`
	Icon            string    `gorm:"size:100" json:"icon"`
	ContentType     string    `gorm:"size:50" json:"content_type"`
	Settings        string    `gorm:"type:text" json:"settings"` // opaque JSON, not interpreted by the engine
	IsVisible       bool      `gorm:"default:true" json:"is_visible"`
	IsMandatory     bool      `gorm:"default:false" json:"is_mandatory"`
	IsSystemDefault bool      `gorm:"default:false" json:"is_system_default"`
	DisplayOrder    int       `gorm:"default:0" json:"display_order"`
	CreatedBy       *uint     `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (TabConfig) TableName() string { return "tab_configs" }
