package models

import (
	"time"

	"gorm.io/gorm"
)

// Visit is a single patient encounter.
type Visit struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	PatientID      uint           `gorm:"index;not null" json:"patient_id"`
	Patient        *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	VisitDate      time.Time      `gorm:"index;not null" json:"visit_date"`
	VisitType      string         `gorm:"size:50" json:"visit_type"` // outpatient, inpatient, emergency, telehealth
	Reason         string         `gorm:"size:500" json:"reason"`
	Diagnosis      string         `gorm:"size:500" json:"diagnosis"`
	Notes          string         `gorm:"type:text" json:"notes"`
	AttendingID    *uint          `json:"attending_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Visit) TableName() string { return "visits" }
