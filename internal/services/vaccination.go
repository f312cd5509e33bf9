package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type VaccinationService struct {
	db *gorm.DB
}

func NewVaccinationService(db *gorm.DB) *VaccinationService {
	return &VaccinationService{db: db}
}

type VaccinationListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	PatientID uint   `form:"patient_id"`
	DueBefore string `form:"due_before"`
}

type VaccinationListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.Vaccination `json:"items"`
}

type CreateVaccinationRequest struct {
	PatientID      uint       `json:"patient_id" binding:"required"`
	VaccineCode    string     `json:"vaccine_code" binding:"required"`
	VaccineName    string     `json:"vaccine_name"`
	DoseNumber     int        `json:"dose_number" binding:"omitempty,min=1"`
	AdministeredAt time.Time  `json:"administered_at" binding:"required"`
	LotNumber      string     `json:"lot_number"`
	Site           string     `json:"site"`
	NextDueDate    *time.Time `json:"next_due_date"`
}

type UpdateVaccinationRequest struct {
	VaccineName *string    `json:"vaccine_name"`
	LotNumber   *string    `json:"lot_number"`
	Site        *string    `json:"site"`
	NextDueDate *time.Time `json:"next_due_date"`
}

// List returns paginated vaccinations for one organization.
func (s *VaccinationService) List(orgID uint, req *VaccinationListRequest) (*VaccinationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var items []models.Vaccination
	var total int64

	query := s.db.Model(&models.Vaccination{}).Where("organization_id = ?", orgID)

	if req.PatientID != 0 {
		query = query.Where("patient_id = ?", req.PatientID)
	}
	if req.DueBefore != "" {
		query = query.Where("next_due_date IS NOT NULL AND next_due_date <= ?", req.DueBefore)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Patient").Offset(offset).Limit(req.PageSize).Order("administered_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &VaccinationListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// GetByID returns a vaccination, scoped to the caller's organization.
func (s *VaccinationService) GetByID(orgID, id uint) (*models.Vaccination, error) {
	var v models.Vaccination
	if err := s.db.Preload("Patient").Where("organization_id = ?", orgID).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Create records an administered dose.
func (s *VaccinationService) Create(orgID, userID uint, req *CreateVaccinationRequest) (*models.Vaccination, error) {
	var patient models.Patient
	if err := s.db.Where("organization_id = ?", orgID).First(&patient, req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("patient not found")
		}
		return nil, err
	}

	dose := req.DoseNumber
	if dose == 0 {
		dose = 1
	}

	v := models.Vaccination{
		OrganizationID: orgID,
		PatientID:      req.PatientID,
		VaccineCode:    req.VaccineCode,
		VaccineName:    req.VaccineName,
		DoseNumber:     dose,
		AdministeredAt: req.AdministeredAt,
		LotNumber:      req.LotNumber,
		Site:           req.Site,
		AdministeredBy: &userID,
		NextDueDate:    req.NextDueDate,
	}

	if err := s.db.Create(&v).Error; err != nil {
		return nil, err
	}

	return &v, nil
}

// Update patches an existing dose record. Changing the due date clears
// the sent marker so the new date gets its own reminder.
func (s *VaccinationService) Update(orgID, id uint, req *UpdateVaccinationRequest) (*models.Vaccination, error) {
	v, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.VaccineName != nil {
		updates["vaccine_name"] = *req.VaccineName
	}
	if req.LotNumber != nil {
		updates["lot_number"] = *req.LotNumber
	}
	if req.Site != nil {
		updates["site"] = *req.Site
	}
	if req.NextDueDate != nil {
		updates["next_due_date"] = req.NextDueDate
		updates["reminder_sent_at"] = nil
	}

	if len(updates) == 0 {
		return v, nil
	}

	if err := s.db.Model(v).Updates(updates).Error; err != nil {
		return nil, err
	}

	return v, nil
}

// Delete soft-deletes a dose record.
func (s *VaccinationService) Delete(orgID, id uint) error {
	result := s.db.Where("organization_id = ?", orgID).Delete(&models.Vaccination{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("vaccination not found")
	}
	return nil
}
