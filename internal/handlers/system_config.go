package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

// SystemConfigHandler serves the superadmin platform settings endpoints.
type SystemConfigHandler struct {
	configService  *services.SystemConfigService
	holidayService *services.HolidayService
	ldapService    *services.LDAPService
}

func NewSystemConfigHandler(db *gorm.DB) *SystemConfigHandler {
	return &SystemConfigHandler{
		configService:  services.NewSystemConfigService(db),
		holidayService: services.NewHolidayService(),
		ldapService:    services.NewLDAPService(db),
	}
}

// GetLDAPConfig returns the directory integration settings
// GET /api/admin/config/ldap
func (h *SystemConfigHandler) GetLDAPConfig(c *gin.Context) {
	response.Success(c, h.configService.GetLDAPConfig())
}

// UpdateLDAPConfig updates the directory integration settings
// PUT /api/admin/config/ldap
func (h *SystemConfigHandler) UpdateLDAPConfig(c *gin.Context) {
	var req services.UpdateLDAPConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateLDAPConfig(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, h.configService.GetLDAPConfig())
}

// TestLDAPConnection verifies credentials against the directory
// POST /api/admin/config/ldap/test
func (h *SystemConfigHandler) TestLDAPConnection(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.ldapService.Authenticate(req.Username, req.Password)
	if err != nil {
		response.Success(c, gin.H{"success": false, "error": err.Error()})
		return
	}

	response.Success(c, gin.H{"success": true, "user": user})
}

// GetEmailConfig returns the outbound mail settings
// GET /api/admin/config/email
func (h *SystemConfigHandler) GetEmailConfig(c *gin.Context) {
	response.Success(c, h.configService.GetEmailConfig())
}

// UpdateEmailConfig updates the outbound mail settings
// PUT /api/admin/config/email
func (h *SystemConfigHandler) UpdateEmailConfig(c *gin.Context) {
	var req services.UpdateEmailConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateEmailConfig(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, h.configService.GetEmailConfig())
}

// GetReminderConfig returns the vaccination reminder schedule settings
// GET /api/admin/config/reminders
func (h *SystemConfigHandler) GetReminderConfig(c *gin.Context) {
	response.Success(c, h.configService.GetReminderConfig())
}

// UpdateReminderConfig updates the vaccination reminder schedule settings
// PUT /api/admin/config/reminders
func (h *SystemConfigHandler) UpdateReminderConfig(c *gin.Context) {
	var req services.UpdateReminderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateReminderConfig(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.configService.GetReminderConfig())
}

// GetSupportedCountries lists the calendars available for workday checks
// GET /api/admin/config/reminders/countries
func (h *SystemConfigHandler) GetSupportedCountries(c *gin.Context) {
	response.Success(c, h.holidayService.GetSupportedCountries())
}
