package services

import (
	"testing"
)

func TestLDAPConfigResponse_Defaults(t *testing.T) {
	cfg := &LDAPConfigResponse{
		Enabled:     false,
		Host:        "",
		Port:        389,
		BaseDN:      "",
		BindDN:      "",
		UserFilter:  "(uid=%s)",
		UseSSL:      false,
		PasswordSet: false,
	}

	if cfg.Enabled {
		t.Error("Enabled should be false by default")
	}
	if cfg.Port != 389 {
		t.Errorf("default port should be 389, got %d", cfg.Port)
	}
	if cfg.UserFilter != "(uid=%s)" {
		t.Errorf("default UserFilter should be (uid=%%s), got %s", cfg.UserFilter)
	}
	if cfg.PasswordSet {
		t.Error("PasswordSet should be false by default")
	}
}

func TestUpdateLDAPConfigRequest_PartialUpdate(t *testing.T) {
	enabled := true
	host := "ldap.example.com"
	port := 636

	req := &UpdateLDAPConfigRequest{
		Enabled: &enabled,
		Host:    &host,
		Port:    &port,
	}

	if req.Enabled == nil || *req.Enabled != true {
		t.Error("Enabled should be set to true")
	}
	if req.Host == nil || *req.Host != "ldap.example.com" {
		t.Error("Host should be set")
	}
	if req.Port == nil || *req.Port != 636 {
		t.Error("Port should be set to 636")
	}
	if req.BaseDN != nil {
		t.Error("BaseDN should be nil (not set)")
	}
	if req.BindPassword != nil {
		t.Error("BindPassword should be nil (not set)")
	}
}

func TestEmailConfigResponse_Structure(t *testing.T) {
	cfg := &EmailConfigResponse{
		Enabled:     true,
		Host:        "smtp.example.com",
		Port:        587,
		From:        "noreply@example.com",
		UseTLS:      true,
		PasswordSet: true,
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true")
	}
	if cfg.Host != "smtp.example.com" {
		t.Errorf("Host = %q, expected %q", cfg.Host, "smtp.example.com")
	}
	if cfg.Port != 587 {
		t.Errorf("Port = %d, expected 587", cfg.Port)
	}
	if !cfg.UseTLS {
		t.Error("UseTLS should be true")
	}
}

func TestUpdateEmailConfigRequest_PartialUpdate(t *testing.T) {
	enabled := false
	from := "clinic@example.com"

	req := &UpdateEmailConfigRequest{
		Enabled: &enabled,
		From:    &from,
	}

	if req.Enabled == nil || *req.Enabled != false {
		t.Error("Enabled should be set to false")
	}
	if req.From == nil || *req.From != "clinic@example.com" {
		t.Error("From should be set")
	}
	if req.Host != nil {
		t.Error("Host should be nil (not set)")
	}
	if req.Password != nil {
		t.Error("Password should be nil (not set)")
	}
}
