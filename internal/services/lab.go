package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type LabService struct {
	db *gorm.DB
}

func NewLabService(db *gorm.DB) *LabService {
	return &LabService{db: db}
}

type LabOrderListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	PatientID uint   `form:"patient_id"`
	Status    string `form:"status"`
}

type LabOrderListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.LabOrder `json:"items"`
}

type CreateLabOrderRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	VisitID   *uint  `json:"visit_id"`
	TestCode  string `json:"test_code" binding:"required"`
	TestName  string `json:"test_name"`
}

type AddLabResultRequest struct {
	Value          string `json:"value" binding:"required"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
	AbnormalFlag   string `json:"abnormal_flag" binding:"omitempty,oneof=H L HH LL A"`
}

// List returns paginated lab orders for one organization.
func (s *LabService) List(orgID uint, req *LabOrderListRequest) (*LabOrderListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var orders []models.LabOrder
	var total int64

	query := s.db.Model(&models.LabOrder{}).Where("organization_id = ?", orgID)

	if req.PatientID != 0 {
		query = query.Where("patient_id = ?", req.PatientID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Results").Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	return &LabOrderListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    orders,
	}, nil
}

// GetByID returns a lab order with its results, scoped to the caller's
// organization.
func (s *LabService) GetByID(orgID, id uint) (*models.LabOrder, error) {
	var order models.LabOrder
	if err := s.db.Preload("Results").Where("organization_id = ?", orgID).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Create places a lab order and mints its accession number.
func (s *LabService) Create(orgID, userID uint, req *CreateLabOrderRequest) (*models.LabOrder, error) {
	var patient models.Patient
	if err := s.db.Where("organization_id = ?", orgID).First(&patient, req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("patient not found")
		}
		return nil, err
	}

	order := models.LabOrder{
		OrganizationID: orgID,
		PatientID:      req.PatientID,
		VisitID:        req.VisitID,
		TestCode:       req.TestCode,
		TestName:       req.TestName,
		AccessionNo:    newAccessionNo(),
		Status:         models.LabStatusOrdered,
		OrderedBy:      userID,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus moves an order through its lifecycle. Resulted orders can
// only be reached through AddResult; cancelled orders are terminal.
func (s *LabService) UpdateStatus(orgID, id uint, status string) (*models.LabOrder, error) {
	if status != models.LabStatusCollected && status != models.LabStatusCancelled {
		return nil, errors.New("invalid status transition")
	}

	order, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	if order.Status == models.LabStatusCancelled || order.Status == models.LabStatusResulted {
		return nil, errors.New("order is already finalized")
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}

	return order, nil
}

// AddResult attaches a result value and marks the order resulted.
func (s *LabService) AddResult(orgID, orderID, userID uint, req *AddLabResultRequest) (*models.LabResult, error) {
	order, err := s.GetByID(orgID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.LabStatusCancelled {
		return nil, errors.New("cannot add results to a cancelled order")
	}

	result := models.LabResult{
		OrderID:        order.ID,
		Value:          req.Value,
		Unit:           req.Unit,
		ReferenceRange: req.ReferenceRange,
		AbnormalFlag:   req.AbnormalFlag,
		ResultedAt:     time.Now(),
		EnteredBy:      userID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		return tx.Model(order).Update("status", models.LabStatusResulted).Error
	}); err != nil {
		return nil, err
	}

	return &result, nil
}

// newAccessionNo mints a specimen accession number.
func newAccessionNo() string {
	return "ACC-" + strings.ToUpper(uuid.New().String()[:13])
}
