package tabs

import "github.com/vitalhq/medboard/backend/internal/models"

// Store is the persistence surface the engine consumes. The engine never
// touches the database directly; everything it needs is a filtered read,
// a row write, or a key-scoped critical section. Keeping this an
// interface lets the resolution and guard logic run against an in-memory
// double in tests.
type Store interface {
	// CandidatesFor returns a fresh snapshot of every record that can
	// participate in a merge for the identity: system defaults, the
	// identity's organization rows, its role rows (when a role is
	// present), and its user rows.
	CandidatesFor(id Identity) ([]models.TabConfig, error)

	// SystemDefaults returns the system-scope seed records only.
	SystemDefaults() ([]models.TabConfig, error)

	FindByID(id uint) (*models.TabConfig, error)
	FindByIDs(ids []uint) ([]models.TabConfig, error)

	// FindAt returns the record at exactly (key, scope, owner), or nil
	// when none exists.
	FindAt(key string, scope Scope, ownerID *uint) (*models.TabConfig, error)

	Insert(rec *models.TabConfig) error
	Update(rec *models.TabConfig) error
	Delete(id uint) error

	// DeleteScope removes every record at (scope, owner) and reports how
	// many rows went away.
	DeleteScope(scope Scope, ownerID *uint) (int64, error)

	// SetDisplayOrders applies a batch of display_order updates
	// atomically; either every row is updated or none is.
	SetDisplayOrders(orders map[uint]int) error

	// RoleOrganization returns the organization owning a role, or zero
	// when the role is unknown.
	RoleOrganization(roleID uint) (uint, error)

	// WithKeyLock runs fn inside a critical section covering the records
	// for key, so a visibility-guard read and its subsequent write see no
	// interleaved writer for the same key. The Store passed to fn must be
	// used for every read and write inside the section.
	WithKeyLock(key string, fn func(Store) error) error
}
