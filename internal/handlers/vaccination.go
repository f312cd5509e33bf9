package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type VaccinationHandler struct {
	vaccinationService *services.VaccinationService
}

func NewVaccinationHandler(db *gorm.DB) *VaccinationHandler {
	return &VaccinationHandler{vaccinationService: services.NewVaccinationService(db)}
}

// List returns paginated vaccinations in the caller's organization
// GET /api/vaccinations
func (h *VaccinationHandler) List(c *gin.Context) {
	var req services.VaccinationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.vaccinationService.List(middleware.GetOrgID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns a single vaccination record
// GET /api/vaccinations/:id
func (h *VaccinationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid vaccination id")
		return
	}

	vaccination, err := h.vaccinationService.GetByID(middleware.GetOrgID(c), uint(id))
	if err != nil {
		response.NotFound(c, "vaccination not found")
		return
	}

	response.Success(c, vaccination)
}

// Create records an administered vaccination
// POST /api/vaccinations
func (h *VaccinationHandler) Create(c *gin.Context) {
	var req services.CreateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	vaccination, err := h.vaccinationService.Create(middleware.GetOrgID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, vaccination)
}

// Update modifies a vaccination record
// PUT /api/vaccinations/:id
func (h *VaccinationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid vaccination id")
		return
	}

	var req services.UpdateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	vaccination, err := h.vaccinationService.Update(middleware.GetOrgID(c), uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, vaccination)
}

// Delete removes a vaccination record
// DELETE /api/vaccinations/:id
func (h *VaccinationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid vaccination id")
		return
	}

	if err := h.vaccinationService.Delete(middleware.GetOrgID(c), uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "vaccination deleted successfully"})
}
