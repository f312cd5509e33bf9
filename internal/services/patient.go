package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

type PatientListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Search   string `form:"search"`
	MRN      string `form:"mrn"`
}

type PatientListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Patient `json:"items"`
}

type CreatePatientRequest struct {
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	BirthDate *time.Time `json:"birth_date"`
	Sex       string     `json:"sex" binding:"omitempty,oneof=male female other unknown"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Address   string     `json:"address"`
	Allergies string     `json:"allergies"`
}

type UpdatePatientRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
	Sex       string     `json:"sex" binding:"omitempty,oneof=male female other unknown"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Address   string     `json:"address"`
	Allergies *string    `json:"allergies"`
}

// List returns paginated patients for one organization.
func (s *PatientService) List(orgID uint, req *PatientListRequest) (*PatientListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var patients []models.Patient
	var total int64

	query := s.db.Model(&models.Patient{}).Where("organization_id = ?", orgID)

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR mrn LIKE ?", like, like, like)
	}
	if req.MRN != "" {
		query = query.Where("mrn = ?", req.MRN)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("last_name, first_name").Find(&patients).Error; err != nil {
		return nil, err
	}

	return &PatientListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    patients,
	}, nil
}

// GetByID returns a patient, scoped to the caller's organization.
func (s *PatientService) GetByID(orgID, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.Where("organization_id = ?", orgID).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// Create registers a patient and assigns a fresh MRN.
func (s *PatientService) Create(orgID, userID uint, req *CreatePatientRequest) (*models.Patient, error) {
	patient := models.Patient{
		OrganizationID: orgID,
		MRN:            newMRN(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      req.BirthDate,
		Sex:            req.Sex,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Allergies:      req.Allergies,
		CreatedBy:      userID,
	}

	if err := s.db.Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// Update updates a patient's demographics.
func (s *PatientService) Update(orgID, id uint, req *UpdatePatientRequest) (*models.Patient, error) {
	patient, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.BirthDate != nil {
		updates["birth_date"] = req.BirthDate
	}
	if req.Sex != "" {
		updates["sex"] = req.Sex
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Allergies != nil {
		updates["allergies"] = *req.Allergies
	}

	if len(updates) == 0 {
		return patient, nil
	}

	if err := s.db.Model(patient).Updates(updates).Error; err != nil {
		return nil, err
	}

	return patient, nil
}

// Delete soft-deletes a patient.
func (s *PatientService) Delete(orgID, id uint) error {
	result := s.db.Where("organization_id = ?", orgID).Delete(&models.Patient{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("patient not found")
	}
	return nil
}

// newMRN mints a medical record number. UUID-derived so two registrars
// can admit concurrently without coordination.
func newMRN() string {
	return "MRN-" + strings.ToUpper(uuid.New().String()[:13])
}
