package services

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/pkg/logger"
)

var auditDB *gorm.DB

// InitAuditLogger wires the package-level audit writer used by the
// middleware. Writes before Init are dropped.
func InitAuditLogger(db *gorm.DB) {
	auditDB = db
}

// RecordAudit persists one audit entry. Failures are logged, never
// surfaced to the request path.
func RecordAudit(module, action, message string, userID, orgID *uint, ip, userAgent string, extra interface{}) {
	if auditDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.AuditLog{
		Level:          "info",
		Module:         module,
		Action:         action,
		Message:        message,
		UserID:         userID,
		OrganizationID: orgID,
		IP:             ip,
		UserAgent:      userAgent,
		Extra:          extraStr,
		CreatedAt:      time.Now(),
	}
	if err := auditDB.Create(entry).Error; err != nil {
		logger.Errorf("audit: failed to persist entry: %v", err)
	}
}

type AuditLogService struct {
	db *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{db: db}
}

type AuditLogListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	Level     string `form:"level"`
	Module    string `form:"module"`
	Action    string `form:"action"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type AuditLogListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.AuditLog `json:"items"`
}

// List returns audit entries for one organization. Pass orgID 0 for the
// superadmin view across all organizations.
func (s *AuditLogService) List(orgID uint, req *AuditLogListRequest) (*AuditLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var logs []models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{})

	if orgID != 0 {
		query = query.Where("organization_id = ?", orgID)
	}
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Action != "" {
		query = query.Where("action LIKE ?", "%"+req.Action+"%")
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &AuditLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

func (s *AuditLogService) GetModules() ([]string, error) {
	var modules []string
	if err := s.db.Model(&models.AuditLog{}).Distinct("module").Pluck("module", &modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// CleanupOldLogs deletes entries older than the specified number of days
// and returns the number of deleted records.
func (s *AuditLogService) CleanupOldLogs(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoffTime := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoffTime).Delete(&models.AuditLog{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// GetRetentionDays gets the audit retention days from system config.
func (s *AuditLogService) GetRetentionDays() int {
	var cfg models.SystemConfig
	if err := s.db.Where("config_key = ?", "audit_retention_days").First(&cfg).Error; err != nil {
		return 365
	}

	days, err := strconv.Atoi(cfg.Value)
	if err != nil {
		return 365
	}
	return days
}

// StartAuditCleanupScheduler starts a goroutine that periodically trims
// old audit entries.
func StartAuditCleanupScheduler(db *gorm.DB) {
	go func() {
		service := NewAuditLogService(db)

		runAuditCleanup(service)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			runAuditCleanup(service)
		}
	}()
}

func runAuditCleanup(service *AuditLogService) {
	retentionDays := service.GetRetentionDays()
	if retentionDays <= 0 {
		logger.Info().Msg("audit cleanup disabled (retention_days <= 0)")
		return
	}

	deleted, err := service.CleanupOldLogs(retentionDays)
	if err != nil {
		logger.Errorf("audit cleanup failed: %v", err)
		return
	}

	if deleted > 0 {
		logger.Infof("audit cleanup removed %d entries older than %d days", deleted, retentionDays)
	}
}
