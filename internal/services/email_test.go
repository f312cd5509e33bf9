package services

import (
	"strings"
	"testing"
)

func TestBuildReminderBody(t *testing.T) {
	s := &EmailService{}

	body := s.buildReminderBody(&VaccinationReminder{
		PatientName:      "Ada Clarke",
		VaccineName:      "MMR",
		DoseNumber:       2,
		DueDate:          "2026-09-15",
		OrganizationName: "Lakeside Clinic",
	})

	for _, want := range []string{"Ada Clarke", "MMR", "2026-09-15", "Lakeside Clinic"} {
		if !strings.Contains(body, want) {
			t.Errorf("reminder body missing %q", want)
		}
	}

	if !strings.Contains(body, "<html>") {
		t.Error("reminder body should be HTML")
	}
}

func TestEmailConfig_Defaults(t *testing.T) {
	cfg := &EmailConfig{Port: 587}

	if cfg.Enabled {
		t.Error("Enabled should be false by default")
	}
	if cfg.Port != 587 {
		t.Errorf("default port should be 587, got %d", cfg.Port)
	}
}
