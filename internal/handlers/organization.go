package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

// OrganizationHandler serves the superadmin tenant management endpoints.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{orgService: services.NewOrganizationService(db)}
}

// List returns paginated organizations
// GET /api/admin/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	var req services.OrganizationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orgService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns a single organization
// GET /api/admin/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}

	org, err := h.orgService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "organization not found")
		return
	}

	response.Success(c, org)
}

// Create provisions a new tenant
// POST /api/admin/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req services.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	org, err := h.orgService.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, org)
}

// Update modifies an organization
// PUT /api/admin/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}

	var req services.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	org, err := h.orgService.Update(uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, org)
}

// Delete removes an organization
// DELETE /api/admin/organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}

	if err := h.orgService.Delete(uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "organization deleted successfully"})
}
