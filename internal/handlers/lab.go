package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type LabHandler struct {
	labService *services.LabService
}

func NewLabHandler(db *gorm.DB) *LabHandler {
	return &LabHandler{labService: services.NewLabService(db)}
}

type updateLabStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=collected cancelled"`
}

// List returns paginated lab orders in the caller's organization
// GET /api/labs
func (h *LabHandler) List(c *gin.Context) {
	var req services.LabOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.labService.List(middleware.GetOrgID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns a single lab order with its results
// GET /api/labs/:id
func (h *LabHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid lab order id")
		return
	}

	order, err := h.labService.GetByID(middleware.GetOrgID(c), uint(id))
	if err != nil {
		response.NotFound(c, "lab order not found")
		return
	}

	response.Success(c, order)
}

// Create places a new lab order
// POST /api/labs
func (h *LabHandler) Create(c *gin.Context) {
	var req services.CreateLabOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.labService.Create(middleware.GetOrgID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, order)
}

// UpdateStatus advances a lab order through its lifecycle
// PUT /api/labs/:id/status
func (h *LabHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid lab order id")
		return
	}

	var req updateLabStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.labService.UpdateStatus(middleware.GetOrgID(c), uint(id), req.Status)
	if err != nil {
		response.Error(c, response.NewConflict(err.Error()))
		return
	}

	response.Success(c, order)
}

// AddResult attaches a result and moves the order to resulted
// POST /api/labs/:id/results
func (h *LabHandler) AddResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid lab order id")
		return
	}

	var req services.AddLabResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.labService.AddResult(middleware.GetOrgID(c), uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, response.NewConflict(err.Error()))
		return
	}

	response.Created(c, result)
}
