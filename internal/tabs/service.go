package tabs

import "github.com/vitalhq/medboard/backend/internal/models"

// Service exposes the engine's operations to the route layer. It holds no
// state of its own; every call works off a fresh store snapshot and the
// caller's identity.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Resolve returns the viewer-effective tab sequence. Without an
// organization context it degrades to the visible system defaults.
func (s *Service) Resolve(id Identity) ([]models.TabConfig, error) {
	if id.OrganizationID == 0 {
		defaults, err := s.store.SystemDefaults()
		if err != nil {
			return nil, err
		}
		return Merge(defaults), nil
	}

	candidates, err := s.store.CandidatesFor(id)
	if err != nil {
		return nil, err
	}
	return Merge(candidates), nil
}

// SetVisibility shows or hides the tab identified by key at the target
// scope. An existing override at (key, scope, owner) is updated in place;
// otherwise the currently-effective record's display metadata is cloned
// into a new override. The system record itself is never touched.
//
// Hides run the whole pipeline inside a key-scoped critical section so
// the guard verdict and the write commit against the same snapshot.
func (s *Service) SetVisibility(key string, target Scope, visible bool, id Identity) (*models.TabConfig, error) {
	owner, err := id.writeOwner(target)
	if err != nil {
		return nil, err
	}

	var out *models.TabConfig
	apply := func(st Store) error {
		candidates, err := st.CandidatesFor(id)
		if err != nil {
			return err
		}

		effective := effectiveForKey(candidates, key)
		if effective == nil {
			return ErrNotFound
		}

		if !visible {
			for _, c := range candidates {
				if c.Key == key && c.IsMandatory {
					return ErrMandatoryTab
				}
			}
			pending := PendingChange{Key: key, Scope: target, OwnerID: owner, IsVisible: false}
			if WouldLeaveZeroVisible(candidates, pending) {
				return ErrWouldHideAllTabs
			}
		}

		existing, err := st.FindAt(key, target, owner)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.IsVisible = visible
			if err := st.Update(existing); err != nil {
				return err
			}
			out = existing
			return nil
		}

		creator := id.UserID
		rec := &models.TabConfig{
			Key:          key,
			Scope:        string(target),
			ScopeOwnerID: owner,
			Label:        effective.Label,
			Icon:         effective.Icon,
			ContentType:  effective.ContentType,
			Settings:     effective.Settings,
			DisplayOrder: effective.DisplayOrder,
			IsVisible:    visible,
			CreatedBy:    &creator,
		}
		if err := st.Insert(rec); err != nil {
			return err
		}
		out = rec
		return nil
	}

	if !visible {
		err = s.store.WithKeyLock(key, apply)
	} else {
		err = apply(s.store)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTabRequest carries a new custom tab. The scope owner is always
// derived from the caller, never from the request.
type CreateTabRequest struct {
	Key          string `json:"key" binding:"required"`
	Label        string `json:"label" binding:"required"`
	Icon         string `json:"icon"`
	ContentType  string `json:"content_type"`
	Settings     string `json:"settings"`
	Scope        string `json:"scope" binding:"required,oneof=organization role user"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCustomTab inserts a new non-system record at the caller's slice
// of the requested scope.
func (s *Service) CreateCustomTab(req *CreateTabRequest, id Identity) (*models.TabConfig, error) {
	scope, ok := ParseScope(req.Scope)
	if !ok || scope == ScopeSystem {
		return nil, ErrUnauthorized
	}

	owner, err := id.writeOwner(scope)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindAt(req.Key, scope, owner)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateKey
	}

	creator := id.UserID
	rec := &models.TabConfig{
		Key:          req.Key,
		Scope:        string(scope),
		ScopeOwnerID: owner,
		Label:        req.Label,
		Icon:         req.Icon,
		ContentType:  req.ContentType,
		Settings:     req.Settings,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    true,
		CreatedBy:    &creator,
	}
	if err := s.store.Insert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateTabRequest patches display metadata. Visibility deliberately has
// no field here: it moves only through SetVisibility and its guard.
type UpdateTabRequest struct {
	Label        *string `json:"label"`
	Icon         *string `json:"icon"`
	ContentType  *string `json:"content_type"`
	Settings     *string `json:"settings"`
	DisplayOrder *int    `json:"display_order"`
}

func (s *Service) UpdateCustomTab(recordID uint, patch *UpdateTabRequest, id Identity) (*models.TabConfig, error) {
	rec, err := s.store.FindByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.IsSystemDefault {
		return nil, ErrSystemDefaultImmutable
	}
	ok, err := s.ownsRecord(rec, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	if patch.Label != nil {
		rec.Label = *patch.Label
	}
	if patch.Icon != nil {
		rec.Icon = *patch.Icon
	}
	if patch.ContentType != nil {
		rec.ContentType = *patch.ContentType
	}
	if patch.Settings != nil {
		rec.Settings = *patch.Settings
	}
	if patch.DisplayOrder != nil {
		rec.DisplayOrder = *patch.DisplayOrder
	}

	if err := s.store.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) DeleteCustomTab(recordID uint, id Identity) error {
	rec, err := s.store.FindByID(recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.IsSystemDefault {
		return ErrSystemDefaultImmutable
	}
	ok, err := s.ownsRecord(rec, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}

	return s.store.Delete(rec.ID)
}

// OrderChange assigns a new display order to one record.
type OrderChange struct {
	ID           uint `json:"id" binding:"required"`
	DisplayOrder int  `json:"display_order"`
}

// Reorder applies a batch of ordering changes all-or-nothing: every
// referenced record must exist, be non-system, and belong to the caller
// before a single display_order moves.
func (s *Service) Reorder(changes []OrderChange, id Identity) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(changes))
	seen := make(map[uint]bool, len(changes))
	for _, ch := range changes {
		if !seen[ch.ID] {
			seen[ch.ID] = true
			ids = append(ids, ch.ID)
		}
	}

	recs, err := s.store.FindByIDs(ids)
	if err != nil {
		return 0, err
	}
	if len(recs) != len(ids) {
		return 0, ErrPartialIDSet
	}

	for i := range recs {
		if recs[i].IsSystemDefault {
			return 0, ErrSystemDefaultImmutable
		}
		ok, err := s.ownsRecord(&recs[i], id)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrUnauthorized
		}
	}

	orders := make(map[uint]int, len(changes))
	for _, ch := range changes {
		orders[ch.ID] = ch.DisplayOrder
	}
	if err := s.store.SetDisplayOrders(orders); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ResetOverrides deletes the caller's own records at the given scope,
// falling back to whatever the weaker scopes define. Per-key writes at
// role scope need only role membership, but a reset wipes the role's
// whole slice, so role and organization scopes both require the
// administrator flag. System records can never be reset.
func (s *Service) ResetOverrides(scope Scope, id Identity) (int64, error) {
	if scope == ScopeRole && !id.IsAdmin {
		return 0, ErrUnauthorized
	}
	owner, err := id.writeOwner(scope)
	if err != nil {
		return 0, err
	}
	return s.store.DeleteScope(scope, owner)
}

// ownsRecord implements the ownership rules: a record is writable by a
// caller whose identity matches its scope owner. Role records
// additionally require the role to belong to the caller's organization.
// System records are never owned by anyone.
func (s *Service) ownsRecord(rec *models.TabConfig, id Identity) (bool, error) {
	switch Scope(rec.Scope) {
	case ScopeOrganization:
		return rec.ScopeOwnerID != nil && *rec.ScopeOwnerID == id.OrganizationID, nil
	case ScopeRole:
		if id.RoleID == nil || rec.ScopeOwnerID == nil || *rec.ScopeOwnerID != *id.RoleID {
			return false, nil
		}
		org, err := s.store.RoleOrganization(*rec.ScopeOwnerID)
		if err != nil {
			return false, err
		}
		return org != 0 && org == id.OrganizationID, nil
	case ScopeUser:
		return rec.ScopeOwnerID != nil && *rec.ScopeOwnerID == id.UserID, nil
	default:
		return false, nil
	}
}
