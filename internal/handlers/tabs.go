package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/tabs"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

type TabsHandler struct {
	service *tabs.Service
}

func NewTabsHandler(db *gorm.DB) *TabsHandler {
	return &TabsHandler{service: tabs.NewService(tabs.NewGormStore(db))}
}

type setVisibilityRequest struct {
	Scope   string `json:"scope" binding:"required,oneof=organization role user"`
	Visible *bool  `json:"visible" binding:"required"`
}

type reorderRequest struct {
	Changes []tabs.OrderChange `json:"changes" binding:"required,dive"`
}

// Resolve returns the caller's effective tab sequence
// GET /api/tabs
func (h *TabsHandler) Resolve(c *gin.Context) {
	resolved, err := h.service.Resolve(middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, resolved)
}

// SetVisibility shows or hides one tab at a scope the caller owns
// PUT /api/tabs/:key/visibility
func (h *TabsHandler) SetVisibility(c *gin.Context) {
	var req setVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	scope, ok := tabs.ParseScope(req.Scope)
	if !ok {
		response.BadRequest(c, "invalid scope")
		return
	}

	rec, err := h.service.SetVisibility(c.Param("key"), scope, *req.Visible, middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, rec)
}

// CreateCustomTab adds a non-system tab at the caller's scope slice
// POST /api/tabs
func (h *TabsHandler) CreateCustomTab(c *gin.Context) {
	var req tabs.CreateTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.service.CreateCustomTab(&req, middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Created(c, rec)
}

// UpdateCustomTab patches a custom tab the caller owns
// PUT /api/tabs/:id
func (h *TabsHandler) UpdateCustomTab(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid tab id")
		return
	}

	var req tabs.UpdateTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.service.UpdateCustomTab(uint(id), &req, middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, rec)
}

// DeleteCustomTab removes a custom tab the caller owns
// DELETE /api/tabs/:id
func (h *TabsHandler) DeleteCustomTab(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid tab id")
		return
	}

	if err := h.service.DeleteCustomTab(uint(id), middleware.GetIdentity(c)); err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "tab deleted successfully"})
}

// Reorder applies a batch of display-order changes all-or-nothing
// PUT /api/tabs/reorder
func (h *TabsHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Reorder(req.Changes, middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, gin.H{"updated": updated})
}

// ResetOverrides deletes every override the caller owns at a scope
// DELETE /api/tabs/overrides/:scope
func (h *TabsHandler) ResetOverrides(c *gin.Context) {
	scope, ok := tabs.ParseScope(c.Param("scope"))
	if !ok || scope == tabs.ScopeSystem {
		response.BadRequest(c, "invalid scope")
		return
	}

	deleted, err := h.service.ResetOverrides(scope, middleware.GetIdentity(c))
	if err != nil {
		respondTabsError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// ReseedCatalog restores any missing system default tabs
// POST /api/admin/tabs/reseed
func (h *TabsHandler) ReseedCatalog(c *gin.Context) {
	if err := h.service.Seed(tabs.DefaultCatalog()); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "tab catalog reseeded"})
}

// respondTabsError maps engine sentinels onto the response envelope.
func respondTabsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tabs.ErrUnauthorized):
		response.Forbidden(c, err.Error())
	case errors.Is(err, tabs.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, tabs.ErrSystemDefaultImmutable):
		response.Error(c, response.NewForbidden(err.Error()))
	case errors.Is(err, tabs.ErrMandatoryTab),
		errors.Is(err, tabs.ErrWouldHideAllTabs):
		response.Error(c, response.NewUnprocessable(err.Error()))
	case errors.Is(err, tabs.ErrDuplicateKey):
		response.Error(c, response.NewConflict(err.Error()))
	case errors.Is(err, tabs.ErrPartialIDSet):
		response.Error(c, response.NewUnprocessable(err.Error()))
	default:
		response.ServerError(c, err.Error())
	}
}
