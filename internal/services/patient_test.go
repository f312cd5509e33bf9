package services

import (
	"strings"
	"testing"
)

func TestNewMRN_Format(t *testing.T) {
	mrn := newMRN()

	if !strings.HasPrefix(mrn, "MRN-") {
		t.Errorf("MRN %q should carry the MRN- prefix", mrn)
	}
	if len(mrn) < 10 {
		t.Errorf("MRN %q seems too short", mrn)
	}
	if mrn != strings.ToUpper(mrn) {
		t.Errorf("MRN %q should be upper case", mrn)
	}
}

func TestNewMRN_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		mrn := newMRN()
		if seen[mrn] {
			t.Fatalf("duplicate MRN generated: %s", mrn)
		}
		seen[mrn] = true
	}
}

func TestNewAccessionNo_Format(t *testing.T) {
	acc := newAccessionNo()

	if !strings.HasPrefix(acc, "ACC-") {
		t.Errorf("accession number %q should carry the ACC- prefix", acc)
	}
	if acc == newAccessionNo() {
		t.Error("two accession numbers should not collide")
	}
}
