// Package tabs implements scoped resolution of navigation tab
// configuration. Records exist at four scopes (system, organization,
// role, user); a viewer's effective tab set is the per-key merge of every
// record applicable to them, most specific scope winning. The engine is
// stateless: every decision is a function of a store snapshot and the
// caller's identity.
package tabs

// Scope identifies the level at which a tab configuration record is
// defined.
type Scope string

const (
	ScopeSystem       Scope = "system"
	ScopeOrganization Scope = "organization"
	ScopeRole         Scope = "role"
	ScopeUser         Scope = "user"
)

// Priority returns the precedence of a scope. Higher values override
// lower ones during the merge; zero marks an invalid scope. The same
// table serves the read path and the write path.
func (s Scope) Priority() int {
	switch s {
	case ScopeSystem:
		return 1
	case ScopeOrganization:
		return 2
	case ScopeRole:
		return 3
	case ScopeUser:
		return 4
	default:
		return 0
	}
}

// Valid reports whether s is one of the four defined scopes.
func (s Scope) Valid() bool {
	return s.Priority() != 0
}

func (s Scope) String() string {
	return string(s)
}

// ParseScope converts a string into a Scope. The second return value is
// false for unrecognised input.
func ParseScope(value string) (Scope, bool) {
	switch Scope(value) {
	case ScopeSystem, ScopeOrganization, ScopeRole, ScopeUser:
		return Scope(value), true
	default:
		return "", false
	}
}

// Identity is the viewer or caller on whose behalf the engine operates.
// OrganizationID is zero when no organization context is resolvable, in
// which case resolution degrades to the system-default subset.
type Identity struct {
	OrganizationID uint
	RoleID         *uint
	UserID         uint
	IsAdmin        bool // organization administrator
}

// writeOwner returns the scope-owner id the identity writes under at the
// given scope, or an error when the identity may not write there.
func (id Identity) writeOwner(scope Scope) (*uint, error) {
	switch scope {
	case ScopeUser:
		if id.UserID == 0 {
			return nil, ErrUnauthorized
		}
		owner := id.UserID
		return &owner, nil
	case ScopeRole:
		if id.RoleID == nil {
			return nil, ErrUnauthorized
		}
		owner := *id.RoleID
		return &owner, nil
	case ScopeOrganization:
		if !id.IsAdmin || id.OrganizationID == 0 {
			return nil, ErrUnauthorized
		}
		owner := id.OrganizationID
		return &owner, nil
	default:
		// System records are never written through scoped operations.
		return nil, ErrUnauthorized
	}
}
