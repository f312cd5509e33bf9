package main

import (
	"github.com/vitalhq/medboard/backend/internal/config"
	"github.com/vitalhq/medboard/backend/internal/handlers"
	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/internal/services"
	"github.com/vitalhq/medboard/backend/internal/tabs"
	"github.com/vitalhq/medboard/backend/internal/utils"
	"github.com/vitalhq/medboard/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	reminderService *services.ReminderService
	taskQueue       services.TaskQueue
	worker          *services.Worker
	authHandler     *handlers.AuthHandler
	authLimiter     *middleware.RateLimiter
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed system configuration defaults
	if err := models.SeedDefaultConfigs(cfg); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default configs")
	}

	// Seed the system tab catalog
	tabService := tabs.NewService(tabs.NewGormStore(models.GetDB()))
	if err := tabService.Seed(tabs.DefaultCatalog()); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed tab catalog")
	}

	// Initialize audit logger and start retention cleanup
	services.InitAuditLogger(models.GetDB())
	services.StartAuditCleanupScheduler(models.GetDB())

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	reminderService := services.NewReminderService(models.GetDB())
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(reminderService.ProcessReminder)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(reminderService.ProcessReminder)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start reminder worker")
			}
		}
	}

	// Start the daily reminder sweep scheduler
	reminderService.StartScheduler()

	// Create the platform superadmin on first boot
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateSuperadminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create superadmin user")
	}

	return &appServices{
		reminderService: reminderService,
		taskQueue:       taskQueue,
		worker:          worker,
		authHandler:     authHandler,
		authLimiter:     middleware.NewAuthRateLimiter(&cfg.RateLimit),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()
	logger.Info().Msg("Reminder scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
