package main

import (
	"github.com/gin-gonic/gin"

	"github.com/vitalhq/medboard/backend/internal/handlers"
	"github.com/vitalhq/medboard/backend/internal/middleware"
	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.CheckHealth)

		// Auth routes (public, rate limited)
		auth := api.Group("/auth", svc.authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Tabs
			tabsHandler := handlers.NewTabsHandler(models.GetDB())
			protected.GET("/tabs", tabsHandler.Resolve)
			protected.POST("/tabs", tabsHandler.CreateCustomTab)
			protected.PUT("/tabs/reorder", tabsHandler.Reorder)
			protected.PUT("/tabs/:id", tabsHandler.UpdateCustomTab)
			protected.DELETE("/tabs/:id", tabsHandler.DeleteCustomTab)
			protected.PUT("/tabs/key/:key/visibility", tabsHandler.SetVisibility)
			protected.DELETE("/tabs/overrides/:scope", tabsHandler.ResetOverrides)

			// Patients
			patientHandler := handlers.NewPatientHandler(models.GetDB())
			protected.GET("/patients", patientHandler.List)
			protected.GET("/patients/:id", patientHandler.Get)
			protected.POST("/patients", patientHandler.Create)
			protected.PUT("/patients/:id", patientHandler.Update)
			protected.DELETE("/patients/:id", patientHandler.Delete)

			// Visits
			visitHandler := handlers.NewVisitHandler(models.GetDB())
			protected.GET("/visits", visitHandler.List)
			protected.GET("/visits/:id", visitHandler.Get)
			protected.POST("/visits", visitHandler.Create)
			protected.PUT("/visits/:id", visitHandler.Update)
			protected.DELETE("/visits/:id", visitHandler.Delete)

			// Lab orders
			labHandler := handlers.NewLabHandler(models.GetDB())
			protected.GET("/labs", labHandler.List)
			protected.GET("/labs/:id", labHandler.Get)
			protected.POST("/labs", labHandler.Create)
			protected.PUT("/labs/:id/status", labHandler.UpdateStatus)
			protected.POST("/labs/:id/results", labHandler.AddResult)

			// Vaccinations
			vaccinationHandler := handlers.NewVaccinationHandler(models.GetDB())
			protected.GET("/vaccinations", vaccinationHandler.List)
			protected.GET("/vaccinations/:id", vaccinationHandler.Get)
			protected.POST("/vaccinations", vaccinationHandler.Create)
			protected.PUT("/vaccinations/:id", vaccinationHandler.Update)
			protected.DELETE("/vaccinations/:id", vaccinationHandler.Delete)

			// Roles (read for all users)
			roleHandler := handlers.NewRoleHandler(models.GetDB())
			protected.GET("/roles", roleHandler.List)
			protected.GET("/roles/:id", roleHandler.Get)
		}

		// Organization admin routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Staff accounts
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.Get)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.POST("/users/:id/reset-password", userHandler.ResetPassword)

			// Roles (write operations)
			roleHandler := handlers.NewRoleHandler(models.GetDB())
			admin.POST("/roles", roleHandler.Create)
			admin.PUT("/roles/:id", roleHandler.Update)
			admin.DELETE("/roles/:id", roleHandler.Delete)

			// Audit trail
			auditLogHandler := handlers.NewAuditLogHandler(models.GetDB())
			admin.GET("/audit-logs", auditLogHandler.List)
			admin.GET("/audit-logs/modules", auditLogHandler.GetModules)
		}

		// Superadmin routes
		superadmin := api.Group("/admin")
		superadmin.Use(middleware.AuthRequired(), middleware.SuperadminRequired(), middleware.AuditLog())
		{
			// Tenants
			orgHandler := handlers.NewOrganizationHandler(models.GetDB())
			superadmin.GET("/organizations", orgHandler.List)
			superadmin.GET("/organizations/:id", orgHandler.Get)
			superadmin.POST("/organizations", orgHandler.Create)
			superadmin.PUT("/organizations/:id", orgHandler.Update)
			superadmin.DELETE("/organizations/:id", orgHandler.Delete)

			// Cross-tenant staff directory
			userHandler := handlers.NewUserHandler(models.GetDB())
			superadmin.GET("/users", userHandler.ListAll)

			// Tab catalog
			tabsHandler := handlers.NewTabsHandler(models.GetDB())
			superadmin.POST("/tabs/reseed", tabsHandler.ReseedCatalog)

			// Platform settings
			systemConfigHandler := handlers.NewSystemConfigHandler(models.GetDB())
			superadmin.GET("/config/ldap", systemConfigHandler.GetLDAPConfig)
			superadmin.PUT("/config/ldap", systemConfigHandler.UpdateLDAPConfig)
			superadmin.POST("/config/ldap/test", systemConfigHandler.TestLDAPConnection)
			superadmin.GET("/config/email", systemConfigHandler.GetEmailConfig)
			superadmin.PUT("/config/email", systemConfigHandler.UpdateEmailConfig)
			superadmin.GET("/config/reminders", systemConfigHandler.GetReminderConfig)
			superadmin.PUT("/config/reminders", systemConfigHandler.UpdateReminderConfig)
			superadmin.GET("/config/reminders/countries", systemConfigHandler.GetSupportedCountries)
		}
	}
}
