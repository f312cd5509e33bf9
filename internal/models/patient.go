package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient is a clinical subject. MRN is the medical record number,
// assigned once at registration and never reused.
type Patient struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	MRN            string         `gorm:"uniqueIndex;size:64;not null" json:"mrn"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	BirthDate      *time.Time     `json:"birth_date"`
	Sex            string         `gorm:"size:20" json:"sex"`
	Phone          string         `gorm:"size:50" json:"phone"`
	Email          string         `gorm:"size:255" json:"email"`
	Address        string         `gorm:"size:500" json:"address"`
	Allergies      string         `gorm:"type:text" json:"allergies"`
	CreatedBy      uint           `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Patient) TableName() string { return "patients" }
