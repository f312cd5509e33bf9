package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{patientService: services.NewPatientService(db)}
}

// List returns paginated patients in the caller's organization
// GET /api/patients
func (h *PatientHandler) List(c *gin.Context) {
	var req services.PatientListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.patientService.List(middleware.GetOrgID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns a single patient
// GET /api/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid patient id")
		return
	}

	patient, err := h.patientService.GetByID(middleware.GetOrgID(c), uint(id))
	if err != nil {
		response.NotFound(c, "patient not found")
		return
	}

	response.Success(c, patient)
}

// Create registers a new patient
// POST /api/patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req services.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Create(middleware.GetOrgID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, patient)
}

// Update modifies a patient record
// PUT /api/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid patient id")
		return
	}

	var req services.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Update(middleware.GetOrgID(c), uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, patient)
}

// Delete removes a patient record
// DELETE /api/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid patient id")
		return
	}

	if err := h.patientService.Delete(middleware.GetOrgID(c), uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "patient deleted successfully"})
}
