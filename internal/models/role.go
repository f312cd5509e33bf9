package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is an organization-defined staff role (physician, nurse, front
// desk). Role names are unique within their organization.
type Role struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"uniqueIndex:idx_roles_org_name;index;not null" json:"organization_id"`
	Name           string         `gorm:"uniqueIndex:idx_roles_org_name;size:100;not null" json:"name"`
	Description    string         `gorm:"size:500" json:"description"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Role) TableName() string { return "roles" }
