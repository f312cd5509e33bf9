package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/internal/services"
)

// HealthHandler provides enhanced health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Vaccination doses due in the next week still waiting on a reminder
	cutoff := time.Now().AddDate(0, 0, 7)
	var pendingReminders int64
	models.GetDB().Model(&models.Vaccination{}).
		Where("next_due_date IS NOT NULL AND next_due_date <= ? AND reminder_sent_at IS NULL", cutoff).
		Count(&pendingReminders)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "medboard",
		"components": gin.H{
			"database":          dbStatus,
			"queue_mode":        queueMode,
			"pending_reminders": pendingReminders,
		},
	})
}
