package models

import (
	"fmt"
	"strconv"

	"github.com/vitalhq/medboard/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&Organization{},
		&User{},
		&Role{},
		&Patient{},
		&Visit{},
		&LabOrder{},
		&LabResult{},
		&Vaccination{},
		&TabConfig{},
		&RefreshToken{},
		&AuditLog{},
		&SystemConfig{},
		&SchedulerLock{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultConfigs inserts missing system configuration keys. Initial
// values for directory and mail settings come from the config file, so a
// first boot picks up whatever the operator deployed with. Existing rows
// are never touched, so later edits through the API survive restarts.
func SeedDefaultConfigs(cfg *config.Config) error {
	defaults := []SystemConfig{
		{Key: "ldap_enabled", Value: strconv.FormatBool(cfg.LDAP.Enabled), Type: "bool", Group: "ldap", Label: "Enable LDAP Authentication"},
		{Key: "ldap_host", Value: cfg.LDAP.Host, Type: "string", Group: "ldap", Label: "LDAP Server Host"},
		{Key: "ldap_port", Value: strconv.Itoa(cfg.LDAP.Port), Type: "int", Group: "ldap", Label: "LDAP Server Port"},
		{Key: "ldap_base_dn", Value: cfg.LDAP.BaseDN, Type: "string", Group: "ldap", Label: "LDAP Base DN"},
		{Key: "ldap_bind_dn", Value: cfg.LDAP.BindDN, Type: "string", Group: "ldap", Label: "LDAP Bind DN"},
		{Key: "ldap_bind_password", Value: cfg.LDAP.BindPassword, Type: "string", Group: "ldap", Label: "LDAP Bind Password"},
		{Key: "ldap_user_filter", Value: cfg.LDAP.UserFilter, Type: "string", Group: "ldap", Label: "LDAP User Filter"},
		{Key: "ldap_use_ssl", Value: strconv.FormatBool(cfg.LDAP.UseSSL), Type: "bool", Group: "ldap", Label: "Use SSL/TLS"},
		{Key: "ldap_default_organization_id", Value: "", Type: "int", Group: "ldap", Label: "Organization for Provisioned LDAP Users"},
		{Key: "smtp_enabled", Value: strconv.FormatBool(cfg.SMTP.Enabled), Type: "bool", Group: "email", Label: "Enable Email Delivery"},
		{Key: "smtp_host", Value: cfg.SMTP.Host, Type: "string", Group: "email", Label: "SMTP Host"},
		{Key: "smtp_port", Value: strconv.Itoa(cfg.SMTP.Port), Type: "int", Group: "email", Label: "SMTP Port"},
		{Key: "smtp_username", Value: cfg.SMTP.Username, Type: "string", Group: "email", Label: "SMTP Username"},
		{Key: "smtp_password", Value: cfg.SMTP.Password, Type: "string", Group: "email", Label: "SMTP Password"},
		{Key: "smtp_from", Value: cfg.SMTP.From, Type: "string", Group: "email", Label: "Sender Address"},
		{Key: "smtp_use_tls", Value: strconv.FormatBool(cfg.SMTP.UseTLS), Type: "bool", Group: "email", Label: "Use STARTTLS"},
		{Key: "reminder_enabled", Value: "true", Type: "bool", Group: "reminders", Label: "Enable Vaccination Reminders"},
		{Key: "reminder_time", Value: "09:00", Type: "string", Group: "reminders", Label: "Daily Reminder Time"},
		{Key: "reminder_lead_days", Value: "7", Type: "int", Group: "reminders", Label: "Due-Date Lookahead Days"},
		{Key: "reminder_country", Value: "US", Type: "string", Group: "reminders", Label: "Business-Day Calendar Country"},
		{Key: "audit_retention_days", Value: "365", Type: "int", Group: "system", Label: "Audit Log Retention Days"},
		{Key: "auth_access_token_expire_hours", Value: strconv.Itoa(cfg.JWT.ExpireHour), Type: "int", Group: "auth", Label: "Access Token Lifetime (hours)"},
		{Key: "auth_refresh_token_expire_hours", Value: "720", Type: "int", Group: "auth", Label: "Refresh Token Lifetime (hours)"},
	}

	for _, cfg := range defaults {
		var count int64
		DB.Model(&SystemConfig{}).Where("config_key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
