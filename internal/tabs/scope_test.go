package tabs

import "testing"

func TestScopePriorityOrdering(t *testing.T) {
	ordered := []Scope{ScopeSystem, ScopeOrganization, ScopeRole, ScopeUser}

	for i := 1; i < len(ordered); i++ {
		if ordered[i].Priority() <= ordered[i-1].Priority() {
			t.Errorf("%s priority %d should exceed %s priority %d",
				ordered[i], ordered[i].Priority(), ordered[i-1], ordered[i-1].Priority())
		}
	}
}

func TestScopePriorityValues(t *testing.T) {
	tests := []struct {
		scope Scope
		want  int
	}{
		{ScopeSystem, 1},
		{ScopeOrganization, 2},
		{ScopeRole, 3},
		{ScopeUser, 4},
		{Scope("galaxy"), 0},
		{Scope(""), 0},
	}

	for _, tt := range tests {
		if got := tt.scope.Priority(); got != tt.want {
			t.Errorf("Priority(%q) = %d, expected %d", tt.scope, got, tt.want)
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input string
		want  Scope
		ok    bool
	}{
		{"system", ScopeSystem, true},
		{"organization", ScopeOrganization, true},
		{"role", ScopeRole, true},
		{"user", ScopeUser, true},
		{"org", "", false},
		{"SYSTEM", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseScope(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseScope(%q) = (%q, %v), expected (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIdentityWriteOwner(t *testing.T) {
	roleID := uint(7)

	tests := []struct {
		name      string
		identity  Identity
		scope     Scope
		wantOwner uint
		wantErr   bool
	}{
		{"user scope", Identity{OrganizationID: 1, UserID: 42}, ScopeUser, 42, false},
		{"role scope with role", Identity{OrganizationID: 1, UserID: 42, RoleID: &roleID}, ScopeRole, 7, false},
		{"role scope without role", Identity{OrganizationID: 1, UserID: 42}, ScopeRole, 0, true},
		{"org scope as admin", Identity{OrganizationID: 3, UserID: 42, IsAdmin: true}, ScopeOrganization, 3, false},
		{"org scope without admin", Identity{OrganizationID: 3, UserID: 42}, ScopeOrganization, 0, true},
		{"org scope admin without org", Identity{UserID: 42, IsAdmin: true}, ScopeOrganization, 0, true},
		{"system scope", Identity{OrganizationID: 1, UserID: 42, IsAdmin: true}, ScopeSystem, 0, true},
		{"invalid scope", Identity{OrganizationID: 1, UserID: 42}, Scope("galaxy"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, err := tt.identity.writeOwner(tt.scope)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner == nil || *owner != tt.wantOwner {
				t.Errorf("owner = %v, expected %d", owner, tt.wantOwner)
			}
		})
	}
}
