package models

import (
	"time"

	"gorm.io/gorm"
)

// Vaccination is one administered dose. NextDueDate drives the reminder
// scheduler; ReminderSentAt keeps reminders from firing twice.
type Vaccination struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	PatientID      uint           `gorm:"index;not null" json:"patient_id"`
	Patient        *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	VaccineCode    string         `gorm:"size:50;not null" json:"vaccine_code"`
	VaccineName    string         `gorm:"size:200" json:"vaccine_name"`
	DoseNumber     int            `gorm:"default:1" json:"dose_number"`
	AdministeredAt time.Time      `gorm:"not null" json:"administered_at"`
	LotNumber      string         `gorm:"size:100" json:"lot_number"`
	Site           string         `gorm:"size:100" json:"site"`
	AdministeredBy *uint          `json:"administered_by"`
	NextDueDate    *time.Time     `gorm:"index" json:"next_due_date"`
	ReminderSentAt *time.Time     `json:"reminder_sent_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vaccination) TableName() string { return "vaccinations" }
