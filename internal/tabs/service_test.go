package tabs

import (
	"errors"
	"testing"

	"github.com/vitalhq/medboard/backend/internal/models"
)

func testCatalog() []SeedTab {
	return []SeedTab{
		{Key: "overview", Label: "Overview", Icon: "layout-dashboard", ContentType: "summary", DisplayOrder: 10},
		{Key: "billing", Label: "Billing", Icon: "receipt", ContentType: "list", DisplayOrder: 20},
	}
}

func newEngine(t *testing.T, catalog []SeedTab) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store)
	if err := svc.Seed(catalog); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return svc, store
}

func snapshotByID(store *MemoryStore) map[uint]models.TabConfig {
	out := make(map[uint]models.TabConfig)
	for _, rec := range store.Snapshot() {
		out[rec.ID] = rec
	}
	return out
}

func sameRecords(a, b map[uint]models.TabConfig) bool {
	if len(a) != len(b) {
		return false
	}
	for id, ra := range a {
		rb, ok := b[id]
		if !ok {
			return false
		}
		if ra.Key != rb.Key || ra.Scope != rb.Scope || ra.IsVisible != rb.IsVisible ||
			ra.DisplayOrder != rb.DisplayOrder || ra.Label != rb.Label {
			return false
		}
	}
	return true
}

func TestResolve_SystemOnlyFallback(t *testing.T) {
	svc, _ := newEngine(t, testCatalog())

	tabs, err := svc.Resolve(Identity{UserID: 10})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(tabs) != 2 {
		t.Fatalf("resolved %d tabs, expected the 2 system defaults", len(tabs))
	}
	for _, tab := range tabs {
		if Scope(tab.Scope) != ScopeSystem {
			t.Errorf("fallback returned a %s record, expected system only", tab.Scope)
		}
	}
}

func TestSetVisibility_CloneOnWrite(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	before := len(store.Snapshot())

	rec, err := svc.SetVisibility("overview", ScopeUser, false, viewer)
	if err != nil {
		t.Fatalf("hide failed: %v", err)
	}

	if got := len(store.Snapshot()); got != before+1 {
		t.Fatalf("store grew by %d records, expected exactly 1", got-before)
	}
	if Scope(rec.Scope) != ScopeUser || rec.ScopeOwnerID == nil || *rec.ScopeOwnerID != 10 {
		t.Errorf("override created at (%s, %v), expected (user, 10)", rec.Scope, rec.ScopeOwnerID)
	}
	if rec.Label != "Overview" || rec.Icon != "layout-dashboard" || rec.ContentType != "summary" || rec.DisplayOrder != 10 {
		t.Errorf("override did not clone the effective display metadata: %+v", rec)
	}
	if rec.IsSystemDefault || rec.IsMandatory {
		t.Error("cloned override must not inherit the system or mandatory flags")
	}
	if rec.IsVisible {
		t.Error("override should carry the requested visibility")
	}

	system, _ := store.FindAt("overview", ScopeSystem, nil)
	if system == nil || !system.IsVisible || !system.IsSystemDefault {
		t.Errorf("system record was altered by clone-on-write: %+v", system)
	}
}

func TestSetVisibility_UpdateInPlace(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	first, err := svc.SetVisibility("overview", ScopeUser, false, viewer)
	if err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	count := len(store.Snapshot())

	second, err := svc.SetVisibility("overview", ScopeUser, true, viewer)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("show created record %d instead of updating %d", second.ID, first.ID)
	}
	if len(store.Snapshot()) != count {
		t.Error("toggling an existing override must not add records")
	}
	if !second.IsVisible {
		t.Error("record should be visible after the show")
	}
}

func TestSetVisibility_MandatoryProtection(t *testing.T) {
	catalog := []SeedTab{
		{Key: "overview", Label: "Overview", DisplayOrder: 10, IsMandatory: true},
		{Key: "billing", Label: "Billing", DisplayOrder: 20},
	}
	roleID := uint(5)
	svc, store := newEngine(t, catalog)
	store.SetRoleOrganization(roleID, 1)

	admin := Identity{OrganizationID: 1, UserID: 10, RoleID: &roleID, IsAdmin: true}
	for _, scope := range []Scope{ScopeUser, ScopeRole, ScopeOrganization} {
		if _, err := svc.SetVisibility("overview", scope, false, admin); !errors.Is(err, ErrMandatoryTab) {
			t.Errorf("hide mandatory at %s scope: err = %v, expected ErrMandatoryTab", scope, err)
		}
	}

	// Showing a mandatory tab is always allowed.
	if _, err := svc.SetVisibility("overview", ScopeUser, true, admin); err != nil {
		t.Errorf("show mandatory failed: %v", err)
	}
}

// System has {overview, billing}, both optional. Hiding overview succeeds
// (billing remains); hiding billing afterwards must fail and leave the
// store untouched.
func TestSetVisibility_NonEmptyInvariant(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	if _, err := svc.SetVisibility("overview", ScopeUser, false, viewer); err != nil {
		t.Fatalf("first hide failed: %v", err)
	}

	before := snapshotByID(store)

	_, err := svc.SetVisibility("billing", ScopeUser, false, viewer)
	if !errors.Is(err, ErrWouldHideAllTabs) {
		t.Fatalf("second hide: err = %v, expected ErrWouldHideAllTabs", err)
	}

	if !sameRecords(before, snapshotByID(store)) {
		t.Error("failed hide mutated the store")
	}

	// The effective state matches: billing visible via system, overview
	// hidden by the user override.
	tabs, err := svc.Resolve(viewer)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(tabs) != 1 || tabs[0].Key != "billing" {
		t.Errorf("resolved %+v, expected only billing", tabs)
	}
}

func TestSetVisibility_ScopeAuthorization(t *testing.T) {
	svc, _ := newEngine(t, testCatalog())

	plain := Identity{OrganizationID: 1, UserID: 10}
	if _, err := svc.SetVisibility("billing", ScopeOrganization, false, plain); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("org-scope write without admin: err = %v, expected ErrUnauthorized", err)
	}
	if _, err := svc.SetVisibility("billing", ScopeRole, false, plain); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("role-scope write without a role: err = %v, expected ErrUnauthorized", err)
	}
	if _, err := svc.SetVisibility("billing", ScopeSystem, false, plain); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("system-scope write: err = %v, expected ErrUnauthorized", err)
	}
}

func TestSetVisibility_UnknownKey(t *testing.T) {
	svc, _ := newEngine(t, testCatalog())

	_, err := svc.SetVisibility("imaging", ScopeUser, false, Identity{OrganizationID: 1, UserID: 10})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, expected ErrNotFound", err)
	}
}

// A role-scope hide affects every holder of the role; a personal override
// wins over it for the user who sets one.
func TestRoleOverrideWithPersonalException(t *testing.T) {
	roleID := uint(5)
	svc, store := newEngine(t, testCatalog())
	store.SetRoleOrganization(roleID, 1)

	setter := Identity{OrganizationID: 1, UserID: 10, RoleID: &roleID}
	if _, err := svc.SetVisibility("billing", ScopeRole, false, setter); err != nil {
		t.Fatalf("role hide failed: %v", err)
	}

	plainHolder := Identity{OrganizationID: 1, UserID: 11, RoleID: &roleID}
	tabs, err := svc.Resolve(plainHolder)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	for _, tab := range tabs {
		if tab.Key == "billing" {
			t.Error("billing should be hidden for a role holder without a personal override")
		}
	}

	exception := Identity{OrganizationID: 1, UserID: 12, RoleID: &roleID}
	if _, err := svc.SetVisibility("billing", ScopeUser, true, exception); err != nil {
		t.Fatalf("personal show failed: %v", err)
	}
	tabs, err = svc.Resolve(exception)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	found := false
	for _, tab := range tabs {
		if tab.Key == "billing" {
			found = true
		}
	}
	if !found {
		t.Error("personal override should win over the role hide")
	}
}

func TestCreateCustomTab(t *testing.T) {
	svc, _ := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	req := &CreateTabRequest{Key: "notes", Label: "My Notes", Scope: "user", DisplayOrder: 70}
	rec, err := svc.CreateCustomTab(req, viewer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if Scope(rec.Scope) != ScopeUser || rec.ScopeOwnerID == nil || *rec.ScopeOwnerID != 10 {
		t.Errorf("created at (%s, %v), expected (user, 10)", rec.Scope, rec.ScopeOwnerID)
	}
	if rec.IsSystemDefault || !rec.IsVisible {
		t.Errorf("unexpected flags on custom tab: %+v", rec)
	}

	if _, err := svc.CreateCustomTab(req, viewer); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate create: err = %v, expected ErrDuplicateKey", err)
	}

	// Same key is still free at another owner's slice of the same scope.
	other := Identity{OrganizationID: 1, UserID: 11}
	if _, err := svc.CreateCustomTab(req, other); err != nil {
		t.Errorf("create for another user failed: %v", err)
	}

	orgReq := &CreateTabRequest{Key: "protocols", Label: "Protocols", Scope: "organization"}
	if _, err := svc.CreateCustomTab(orgReq, viewer); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("org create without admin: err = %v, expected ErrUnauthorized", err)
	}
}

func TestUpdateCustomTab(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	rec, err := svc.CreateCustomTab(&CreateTabRequest{Key: "notes", Label: "Notes", Scope: "user"}, viewer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	label := "Shift Notes"
	order := 99
	updated, err := svc.UpdateCustomTab(rec.ID, &UpdateTabRequest{Label: &label, DisplayOrder: &order}, viewer)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Label != "Shift Notes" || updated.DisplayOrder != 99 {
		t.Errorf("patch not applied: %+v", updated)
	}

	if _, err := svc.UpdateCustomTab(9999, &UpdateTabRequest{Label: &label}, viewer); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, expected ErrNotFound", err)
	}

	system, _ := store.FindAt("overview", ScopeSystem, nil)
	if _, err := svc.UpdateCustomTab(system.ID, &UpdateTabRequest{Label: &label}, viewer); !errors.Is(err, ErrSystemDefaultImmutable) {
		t.Errorf("system update: err = %v, expected ErrSystemDefaultImmutable", err)
	}

	stranger := Identity{OrganizationID: 1, UserID: 11}
	if _, err := svc.UpdateCustomTab(rec.ID, &UpdateTabRequest{Label: &label}, stranger); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign update: err = %v, expected ErrUnauthorized", err)
	}
}

func TestDeleteCustomTab_OwnershipIsolation(t *testing.T) {
	svc, store := newEngine(t, testCatalog())

	adminB := Identity{OrganizationID: 2, UserID: 20, IsAdmin: true}
	rec, err := svc.CreateCustomTab(&CreateTabRequest{Key: "protocols", Label: "Protocols", Scope: "organization"}, adminB)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	adminA := Identity{OrganizationID: 1, UserID: 10, IsAdmin: true}
	if err := svc.DeleteCustomTab(rec.ID, adminA); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("cross-org delete: err = %v, expected ErrUnauthorized", err)
	}

	system, _ := store.FindAt("overview", ScopeSystem, nil)
	if err := svc.DeleteCustomTab(system.ID, adminB); !errors.Is(err, ErrSystemDefaultImmutable) {
		t.Errorf("system delete: err = %v, expected ErrSystemDefaultImmutable", err)
	}

	if err := svc.DeleteCustomTab(rec.ID, adminB); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if gone, _ := store.FindByID(rec.ID); gone != nil {
		t.Error("record still present after delete")
	}

	if err := svc.DeleteCustomTab(rec.ID, adminB); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, expected ErrNotFound", err)
	}
}

func TestReorder_AllOrNothing(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	rec, err := svc.CreateCustomTab(&CreateTabRequest{Key: "notes", Label: "Notes", Scope: "user", DisplayOrder: 30}, viewer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Reorder([]OrderChange{
		{ID: rec.ID, DisplayOrder: 10},
		{ID: 9999, DisplayOrder: 20},
	}, viewer)
	if !errors.Is(err, ErrPartialIDSet) {
		t.Fatalf("err = %v, expected ErrPartialIDSet", err)
	}

	unchanged, _ := store.FindByID(rec.ID)
	if unchanged.DisplayOrder != 30 {
		t.Errorf("display order = %d after failed batch, expected 30", unchanged.DisplayOrder)
	}

	system, _ := store.FindAt("overview", ScopeSystem, nil)
	_, err = svc.Reorder([]OrderChange{{ID: system.ID, DisplayOrder: 1}}, viewer)
	if !errors.Is(err, ErrSystemDefaultImmutable) {
		t.Errorf("system reorder: err = %v, expected ErrSystemDefaultImmutable", err)
	}

	stranger := Identity{OrganizationID: 1, UserID: 11}
	_, err = svc.Reorder([]OrderChange{{ID: rec.ID, DisplayOrder: 5}}, stranger)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign reorder: err = %v, expected ErrUnauthorized", err)
	}

	count, err := svc.Reorder([]OrderChange{{ID: rec.ID, DisplayOrder: 5}}, viewer)
	if err != nil || count != 1 {
		t.Fatalf("reorder = (%d, %v), expected (1, nil)", count, err)
	}
	moved, _ := store.FindByID(rec.ID)
	if moved.DisplayOrder != 5 {
		t.Errorf("display order = %d, expected 5", moved.DisplayOrder)
	}
}

func TestResetOverrides(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	if _, err := svc.SetVisibility("overview", ScopeUser, false, viewer); err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	if _, err := svc.CreateCustomTab(&CreateTabRequest{Key: "notes", Label: "Notes", Scope: "user"}, viewer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := svc.ResetOverrides(ScopeUser, viewer)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted %d records, expected 2", deleted)
	}

	tabs, err := svc.Resolve(viewer)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(tabs) != 2 {
		t.Errorf("resolved %d tabs after reset, expected the 2 system defaults", len(tabs))
	}

	if _, err := svc.ResetOverrides(ScopeOrganization, viewer); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("org reset without admin: err = %v, expected ErrUnauthorized", err)
	}
	if _, err := svc.ResetOverrides(ScopeSystem, viewer); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("system reset: err = %v, expected ErrUnauthorized", err)
	}

	if count := len(store.Snapshot()); count != 2 {
		t.Errorf("store holds %d records, expected only the system defaults", count)
	}
}

func TestResetOverrides_RoleScopeRequiresAdmin(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	roleID := uint(5)
	member := Identity{OrganizationID: 1, RoleID: &roleID, UserID: 10}
	admin := Identity{OrganizationID: 1, RoleID: &roleID, UserID: 11, IsAdmin: true}

	// Per-key role writes need only role membership.
	if _, err := svc.SetVisibility("billing", ScopeRole, false, member); err != nil {
		t.Fatalf("role hide failed: %v", err)
	}

	if _, err := svc.ResetOverrides(ScopeRole, member); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("role reset without admin: err = %v, expected ErrUnauthorized", err)
	}
	if count := len(store.Snapshot()); count != 3 {
		t.Errorf("store holds %d records after refused reset, expected 3", count)
	}

	deleted, err := svc.ResetOverrides(ScopeRole, admin)
	if err != nil {
		t.Fatalf("admin role reset failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d records, expected 1", deleted)
	}
}

func TestReorder_DuplicateIDsCountedOnce(t *testing.T) {
	svc, store := newEngine(t, testCatalog())
	viewer := Identity{OrganizationID: 1, UserID: 10}

	rec, err := svc.CreateCustomTab(&CreateTabRequest{Key: "notes", Label: "Notes", Scope: "user", DisplayOrder: 30}, viewer)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, err := svc.Reorder([]OrderChange{
		{ID: rec.ID, DisplayOrder: 10},
		{ID: rec.ID, DisplayOrder: 20},
	}, viewer)
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d for a batch touching one record, expected 1", count)
	}

	// Last change for a repeated id wins.
	moved, _ := store.FindByID(rec.ID)
	if moved.DisplayOrder != 20 {
		t.Errorf("display order = %d, expected 20", moved.DisplayOrder)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	svc, store := newEngine(t, testCatalog())

	if err := svc.Seed(testCatalog()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if count := len(store.Snapshot()); count != 2 {
		t.Errorf("store holds %d records after double seed, expected 2", count)
	}
}
