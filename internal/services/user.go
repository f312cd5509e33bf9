package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Search   string `form:"search"`
	RoleID   uint   `form:"role_id"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
	RoleID   *uint  `json:"role_id"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
	RoleID   *uint  `json:"role_id"`
	IsAdmin  *bool  `json:"is_admin"`
	IsActive *bool  `json:"is_active"`
}

// List returns paginated users of one organization.
func (s *UserService) List(orgID uint, req *UserListRequest) (*UserListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var users []models.User
	var total int64

	// orgID 0 means a superadmin listing across every tenant.
	query := s.db.Model(&models.User{})
	if orgID != 0 {
		query = query.Where("organization_id = ?", orgID)
	}

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("username LIKE ? OR full_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if req.RoleID != 0 {
		query = query.Where("role_id = ?", req.RoleID)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}

// GetByID returns a user, scoped to the caller's organization.
func (s *UserService) GetByID(orgID, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("organization_id = ?", orgID).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create adds a staff account to the organization. The role, when given,
// must belong to the same organization.
func (s *UserService) Create(orgID uint, req *CreateUserRequest) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, errors.New("username already in use")
	}

	if req.RoleID != nil {
		var role models.Role
		if err := s.db.Where("organization_id = ?", orgID).First(&role, *req.RoleID).Error; err != nil {
			return nil, errors.New("role not found")
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:       req.Username,
		Password:       hashedPassword,
		Email:          req.Email,
		FullName:       req.FullName,
		OrganizationID: &orgID,
		RoleID:         req.RoleID,
		IsAdmin:        req.IsAdmin,
		AuthType:       "local",
		IsActive:       true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Update updates a staff account.
func (s *UserService) Update(orgID, id uint, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.RoleID != nil {
		var role models.Role
		if err := s.db.Where("organization_id = ?", orgID).First(&role, *req.RoleID).Error; err != nil {
			return nil, errors.New("role not found")
		}
		updates["role_id"] = req.RoleID
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Delete soft-deletes a staff account and revokes its refresh tokens.
func (s *UserService) Delete(orgID, id uint) error {
	user, err := s.GetByID(orgID, id)
	if err != nil {
		return errors.New("user not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// ResetPassword lets an organization admin set a new password for a
// local account.
func (s *UserService) ResetPassword(orgID, id uint, newPassword string) error {
	user, err := s.GetByID(orgID, id)
	if err != nil {
		return errors.New("user not found")
	}

	if user.AuthType != "local" {
		return errors.New("cannot reset password of an LDAP account")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(user).Update("password", hashedPassword).Error
}
