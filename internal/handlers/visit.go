package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type VisitHandler struct {
	visitService *services.VisitService
}

func NewVisitHandler(db *gorm.DB) *VisitHandler {
	return &VisitHandler{visitService: services.NewVisitService(db)}
}

// List returns paginated visits in the caller's organization
// GET /api/visits
func (h *VisitHandler) List(c *gin.Context) {
	var req services.VisitListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.visitService.List(middleware.GetOrgID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns a single visit
// GET /api/visits/:id
func (h *VisitHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid visit id")
		return
	}

	visit, err := h.visitService.GetByID(middleware.GetOrgID(c), uint(id))
	if err != nil {
		response.NotFound(c, "visit not found")
		return
	}

	response.Success(c, visit)
}

// Create records a new visit
// POST /api/visits
func (h *VisitHandler) Create(c *gin.Context) {
	var req services.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.Create(middleware.GetOrgID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, visit)
}

// Update modifies a visit record
// PUT /api/visits/:id
func (h *VisitHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid visit id")
		return
	}

	var req services.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.Update(middleware.GetOrgID(c), uint(id), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, visit)
}

// Delete removes a visit record
// DELETE /api/visits/:id
func (h *VisitHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid visit id")
		return
	}

	if err := h.visitService.Delete(middleware.GetOrgID(c), uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "visit deleted successfully"})
}
