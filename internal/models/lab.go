package models

import (
	"time"

	"gorm.io/gorm"
)

// Lab order lifecycle states.
const (
	LabStatusOrdered   = "ordered"
	LabStatusCollected = "collected"
	LabStatusResulted  = "resulted"
	LabStatusCancelled = "cancelled"
)

// LabOrder is a request for a laboratory test. Test codes come from an
// external catalog and are stored opaquely. AccessionNo identifies the
// specimen across systems.
type LabOrder struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"index;not null" json:"organization_id"`
	PatientID      uint           `gorm:"index;not null" json:"patient_id"`
	VisitID        *uint          `gorm:"index" json:"visit_id"`
	TestCode       string         `gorm:"size:50;not null" json:"test_code"`
	TestName       string         `gorm:"size:200" json:"test_name"`
	AccessionNo    string         `gorm:"uniqueIndex;size:64;not null" json:"accession_no"`
	Status         string         `gorm:"size:20;default:ordered;index" json:"status"`
	OrderedBy      uint           `json:"ordered_by"`
	Results        []LabResult    `gorm:"foreignKey:OrderID" json:"results,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LabOrder) TableName() string { return "lab_orders" }

// LabResult is one reported value for an order.
type LabResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"index;not null" json:"order_id"`
	Value          string    `gorm:"size:200;not null" json:"value"`
	Unit           string    `gorm:"size:50" json:"unit"`
	ReferenceRange string    `gorm:"size:100" json:"reference_range"`
	AbnormalFlag   string    `gorm:"size:20" json:"abnormal_flag"` // H, L, HH, LL, A
	ResultedAt     time.Time `json:"resulted_at"`
	EnteredBy      uint      `json:"entered_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (LabResult) TableName() string { return "lab_results" }
