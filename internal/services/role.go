package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name"`
	Description *string `json:"description"`
}

// List returns all roles of one organization.
func (s *RoleService) List(orgID uint) ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Where("organization_id = ?", orgID).Order("name").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// GetByID returns a role, scoped to the caller's organization.
func (s *RoleService) GetByID(orgID, id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("organization_id = ?", orgID).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Create adds a role. Names are unique within the organization.
func (s *RoleService) Create(orgID uint, req *CreateRoleRequest) (*models.Role, error) {
	var existing models.Role
	if err := s.db.Where("organization_id = ? AND name = ?", orgID, req.Name).First(&existing).Error; err == nil {
		return nil, errors.New("role name already in use")
	}

	role := models.Role{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
	}

	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

// Update updates a role.
func (s *RoleService) Update(orgID, id uint, req *UpdateRoleRequest) (*models.Role, error) {
	role, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" && req.Name != role.Name {
		var existing models.Role
		if err := s.db.Where("organization_id = ? AND name = ?", orgID, req.Name).First(&existing).Error; err == nil {
			return nil, errors.New("role name already in use")
		}
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return role, nil
	}

	if err := s.db.Model(role).Updates(updates).Error; err != nil {
		return nil, err
	}

	return role, nil
}

// Delete removes a role. Users still holding it fall back to no role;
// their role-scope tab overrides stop matching at resolve time.
func (s *RoleService) Delete(orgID, id uint) error {
	role, err := s.GetByID(orgID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("role_id = ?", role.ID).Update("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
}
