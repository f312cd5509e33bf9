package tabs

import (
	"sync"
	"time"

	"github.com/vitalhq/medboard/backend/internal/models"
)

// MemoryStore is an in-memory Store. It backs the engine tests and is
// handy for handler tests that need a working engine without a database.
type MemoryStore struct {
	mu      sync.Mutex
	writeMu sync.Mutex // held across WithKeyLock critical sections
	nextID  uint
	records map[uint]models.TabConfig
	roleOrg map[uint]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uint]models.TabConfig),
		roleOrg: make(map[uint]uint),
	}
}

// SetRoleOrganization registers which organization owns a role, for
// ownership checks on role-scope records.
func (s *MemoryStore) SetRoleOrganization(roleID, orgID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleOrg[roleID] = orgID
}

// Snapshot returns a copy of every record, for store-unchanged assertions.
func (s *MemoryStore) Snapshot() []models.TabConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TabConfig, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}

func (s *MemoryStore) CandidatesFor(id Identity) ([]models.TabConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TabConfig
	for _, rec := range s.records {
		switch Scope(rec.Scope) {
		case ScopeSystem:
			if rec.IsSystemDefault {
				out = append(out, rec)
			}
		case ScopeOrganization:
			if rec.ScopeOwnerID != nil && *rec.ScopeOwnerID == id.OrganizationID {
				out = append(out, rec)
			}
		case ScopeRole:
			if id.RoleID != nil && rec.ScopeOwnerID != nil && *rec.ScopeOwnerID == *id.RoleID {
				out = append(out, rec)
			}
		case ScopeUser:
			if rec.ScopeOwnerID != nil && *rec.ScopeOwnerID == id.UserID {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) SystemDefaults() ([]models.TabConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TabConfig
	for _, rec := range s.records {
		if Scope(rec.Scope) == ScopeSystem && rec.IsSystemDefault {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindByID(id uint) (*models.TabConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) FindByIDs(ids []uint) ([]models.TabConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TabConfig
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindAt(key string, scope Scope, ownerID *uint) (*models.TabConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.Key == key && Scope(rec.Scope) == scope && sameOwner(rec.ScopeOwnerID, ownerID) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Insert(rec *models.TabConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Update(rec *models.TabConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.UpdatedAt = time.Now()
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) DeleteScope(scope Scope, ownerID *uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, rec := range s.records {
		if Scope(rec.Scope) == scope && sameOwner(rec.ScopeOwnerID, ownerID) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) SetDisplayOrders(orders map[uint]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, order := range orders {
		rec := s.records[id]
		rec.DisplayOrder = order
		rec.UpdatedAt = time.Now()
		s.records[id] = rec
	}
	return nil
}

func (s *MemoryStore) RoleOrganization(roleID uint) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleOrg[roleID], nil
}

func (s *MemoryStore) WithKeyLock(_ string, fn func(Store) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return fn(s)
}
