package tabs

import (
	"testing"

	"github.com/vitalhq/medboard/backend/internal/models"
)

func TestWouldLeaveZeroVisible_LastVisibleTab(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
	}

	pending := PendingChange{Key: "overview", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: false}
	if !WouldLeaveZeroVisible(candidates, pending) {
		t.Error("hiding the only visible tab should trip the guard")
	}
}

func TestWouldLeaveZeroVisible_OtherTabStillVisible(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
		record("billing", ScopeSystem, nil, true, 20, ""),
	}

	pending := PendingChange{Key: "overview", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: false}
	if WouldLeaveZeroVisible(candidates, pending) {
		t.Error("guard tripped although billing stays visible")
	}
}

// The invariant is whole-set, not per-key: hiding a key is allowed even
// when that key keeps no visible representative at any scope.
func TestWouldLeaveZeroVisible_PerKeyIndependence(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
		record("billing", ScopeSystem, nil, true, 20, ""),
		record("billing", ScopeRole, uptr(4), false, 20, ""),
	}

	// billing is already effectively hidden by the role override; hiding
	// it again at user scope changes nothing for the set.
	pending := PendingChange{Key: "billing", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: false}
	if WouldLeaveZeroVisible(candidates, pending) {
		t.Error("guard tripped although overview remains visible")
	}
}

func TestWouldLeaveZeroVisible_ExistingOverrideModified(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
		record("overview", ScopeUser, uptr(3), true, 10, ""),
	}

	// The pending change targets the existing user record rather than
	// adding a second one.
	pending := PendingChange{Key: "overview", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: false}
	if !WouldLeaveZeroVisible(candidates, pending) {
		t.Error("guard missed that the existing user override is the effective record")
	}
}

// A pending hide at a weaker scope than the effective record must not
// trip the guard when the stronger record stays visible.
func TestWouldLeaveZeroVisible_WeakerScopeShadowed(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
		record("overview", ScopeUser, uptr(3), true, 10, ""),
	}

	pending := PendingChange{Key: "overview", Scope: ScopeOrganization, OwnerID: uptr(1), IsVisible: false}
	if WouldLeaveZeroVisible(candidates, pending) {
		t.Error("guard tripped although the user override shadows the organization hide")
	}
}

func TestWouldLeaveZeroVisible_ShowIsAlwaysSafe(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, false, 10, ""),
	}

	pending := PendingChange{Key: "overview", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: true}
	if WouldLeaveZeroVisible(candidates, pending) {
		t.Error("a show operation can never leave zero visible")
	}
}

func TestWouldLeaveZeroVisible_DoesNotMutateInput(t *testing.T) {
	candidates := []models.TabConfig{
		record("overview", ScopeSystem, nil, true, 10, ""),
		record("overview", ScopeUser, uptr(3), true, 10, ""),
	}

	pending := PendingChange{Key: "overview", Scope: ScopeUser, OwnerID: uptr(3), IsVisible: false}
	WouldLeaveZeroVisible(candidates, pending)

	for _, rec := range candidates {
		if !rec.IsVisible {
			t.Fatal("guard simulation mutated the caller's snapshot")
		}
	}
}
