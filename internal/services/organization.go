package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

type OrganizationListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Search   string `form:"search"`
}

type OrganizationListResponse struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []models.Organization `json:"items"`
}

type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateOrganizationRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// List returns paginated organizations. Superadmin only.
func (s *OrganizationService) List(req *OrganizationListRequest) (*OrganizationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var orgs []models.Organization
	var total int64

	query := s.db.Model(&models.Organization{})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", like, like)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("name").Find(&orgs).Error; err != nil {
		return nil, err
	}

	return &OrganizationListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    orgs,
	}, nil
}

// GetByID returns an organization by ID.
func (s *OrganizationService) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Create provisions a new tenant.
func (s *OrganizationService) Create(req *CreateOrganizationRequest) (*models.Organization, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	var existing models.Organization
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, errors.New("slug already in use")
	}

	org := models.Organization{
		Name:     req.Name,
		Slug:     slug,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.db.Create(&org).Error; err != nil {
		return nil, err
	}

	return &org, nil
}

// Update updates a tenant.
func (s *OrganizationService) Update(id uint, req *UpdateOrganizationRequest) (*models.Organization, error) {
	org, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return org, nil
	}

	if err := s.db.Model(org).Updates(updates).Error; err != nil {
		return nil, err
	}

	return org, nil
}

// Delete soft-deletes a tenant. Its users can no longer log in through
// the is_active check downstream.
func (s *OrganizationService) Delete(id uint) error {
	result := s.db.Delete(&models.Organization{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("organization not found")
	}
	return nil
}

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
