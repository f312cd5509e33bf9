package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account. OrganizationID is nil only for superadmins,
// who operate across tenants from the admin panel.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password       string         `gorm:"size:255" json:"-"` // bcrypt hash, empty for LDAP users
	Email          string         `gorm:"size:255" json:"email"`
	FullName       string         `gorm:"size:200" json:"full_name"`
	OrganizationID *uint          `gorm:"index" json:"organization_id"`
	RoleID         *uint          `gorm:"index" json:"role_id"`
	IsAdmin        bool           `gorm:"default:false" json:"is_admin"` // organization administrator
	IsSuperadmin   bool           `gorm:"default:false" json:"is_superadmin"`
	AuthType       string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	LastLogin      *time.Time     `json:"last_login"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
