package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type VisitService struct {
	db *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

type VisitListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	PatientID uint   `form:"patient_id"`
	VisitType string `form:"visit_type"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type VisitListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []models.Visit `json:"items"`
}

type CreateVisitRequest struct {
	PatientID   uint      `json:"patient_id" binding:"required"`
	VisitDate   time.Time `json:"visit_date" binding:"required"`
	VisitType   string    `json:"visit_type" binding:"required,oneof=outpatient inpatient emergency telehealth"`
	Reason      string    `json:"reason"`
	Diagnosis   string    `json:"diagnosis"`
	Notes       string    `json:"notes"`
	AttendingID *uint     `json:"attending_id"`
}

type UpdateVisitRequest struct {
	VisitDate   *time.Time `json:"visit_date"`
	VisitType   string     `json:"visit_type" binding:"omitempty,oneof=outpatient inpatient emergency telehealth"`
	Reason      string     `json:"reason"`
	Diagnosis   string     `json:"diagnosis"`
	Notes       *string    `json:"notes"`
	AttendingID *uint      `json:"attending_id"`
}

// List returns paginated visits for one organization.
func (s *VisitService) List(orgID uint, req *VisitListRequest) (*VisitListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var visits []models.Visit
	var total int64

	query := s.db.Model(&models.Visit{}).Where("organization_id = ?", orgID)

	if req.PatientID != 0 {
		query = query.Where("patient_id = ?", req.PatientID)
	}
	if req.VisitType != "" {
		query = query.Where("visit_type = ?", req.VisitType)
	}
	if req.StartDate != "" {
		query = query.Where("visit_date >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("visit_date <= ?", req.EndDate+" 23:59:59")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Patient").Offset(offset).Limit(req.PageSize).Order("visit_date DESC").Find(&visits).Error; err != nil {
		return nil, err
	}

	return &VisitListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    visits,
	}, nil
}

// GetByID returns a visit, scoped to the caller's organization.
func (s *VisitService) GetByID(orgID, id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.Preload("Patient").Where("organization_id = ?", orgID).First(&visit, id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// Create records a new encounter. The patient must belong to the same
// organization.
func (s *VisitService) Create(orgID uint, req *CreateVisitRequest) (*models.Visit, error) {
	var patient models.Patient
	if err := s.db.Where("organization_id = ?", orgID).First(&patient, req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("patient not found")
		}
		return nil, err
	}

	visit := models.Visit{
		OrganizationID: orgID,
		PatientID:      req.PatientID,
		VisitDate:      req.VisitDate,
		VisitType:      req.VisitType,
		Reason:         req.Reason,
		Diagnosis:      req.Diagnosis,
		Notes:          req.Notes,
		AttendingID:    req.AttendingID,
	}

	if err := s.db.Create(&visit).Error; err != nil {
		return nil, err
	}

	return &visit, nil
}

// Update updates an encounter.
func (s *VisitService) Update(orgID, id uint, req *UpdateVisitRequest) (*models.Visit, error) {
	visit, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.VisitDate != nil {
		updates["visit_date"] = req.VisitDate
	}
	if req.VisitType != "" {
		updates["visit_type"] = req.VisitType
	}
	if req.Reason != "" {
		updates["reason"] = req.Reason
	}
	if req.Diagnosis != "" {
		updates["diagnosis"] = req.Diagnosis
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.AttendingID != nil {
		updates["attending_id"] = req.AttendingID
	}

	if len(updates) == 0 {
		return visit, nil
	}

	if err := s.db.Model(visit).Updates(updates).Error; err != nil {
		return nil, err
	}

	return visit, nil
}

// Delete soft-deletes a visit.
func (s *VisitService) Delete(orgID, id uint) error {
	result := s.db.Where("organization_id = ?", orgID).Delete(&models.Visit{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("visit not found")
	}
	return nil
}
