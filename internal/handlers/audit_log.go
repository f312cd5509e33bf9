package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type AuditLogHandler struct {
	auditService *services.AuditLogService
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{auditService: services.NewAuditLogService(db)}
}

// List returns paginated audit entries scoped to the caller's tenant.
// Superadmins see entries across every organization.
// GET /api/audit-logs
func (h *AuditLogHandler) List(c *gin.Context) {
	var req services.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	orgID := middleware.GetOrgID(c)
	if middleware.GetIsSuperadmin(c) {
		orgID = 0
	}

	resp, err := h.auditService.List(orgID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetModules returns the distinct modules present in the audit trail
// GET /api/audit-logs/modules
func (h *AuditLogHandler) GetModules(c *gin.Context) {
	modules, err := h.auditService.GetModules()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, modules)
}
