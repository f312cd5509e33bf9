package tabs

import (
	"errors"

	"github.com/vitalhq/medboard/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the production Store over the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CandidatesFor(id Identity) ([]models.TabConfig, error) {
	cond := s.db.
		Where("scope = ? AND is_system_default = ?", string(ScopeSystem), true).
		Or("scope = ? AND scope_owner_id = ?", string(ScopeOrganization), id.OrganizationID)
	if id.RoleID != nil {
		cond = cond.Or("scope = ? AND scope_owner_id = ?", string(ScopeRole), *id.RoleID)
	}
	if id.UserID != 0 {
		cond = cond.Or("scope = ? AND scope_owner_id = ?", string(ScopeUser), id.UserID)
	}

	var recs []models.TabConfig
	if err := s.db.Where(cond).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) SystemDefaults() ([]models.TabConfig, error) {
	var recs []models.TabConfig
	err := s.db.
		Where("scope = ? AND is_system_default = ?", string(ScopeSystem), true).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) FindByID(id uint) (*models.TabConfig, error) {
	var rec models.TabConfig
	if err := s.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) FindByIDs(ids []uint) ([]models.TabConfig, error) {
	var recs []models.TabConfig
	if err := s.db.Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) FindAt(key string, scope Scope, ownerID *uint) (*models.TabConfig, error) {
	q := s.db.Where("tab_key = ? AND scope = ?", key, string(scope))
	if ownerID == nil {
		q = q.Where("scope_owner_id IS NULL")
	} else {
		q = q.Where("scope_owner_id = ?", *ownerID)
	}

	var rec models.TabConfig
	if err := q.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) Insert(rec *models.TabConfig) error {
	return s.db.Create(rec).Error
}

func (s *GormStore) Update(rec *models.TabConfig) error {
	return s.db.Save(rec).Error
}

func (s *GormStore) Delete(id uint) error {
	return s.db.Delete(&models.TabConfig{}, id).Error
}

func (s *GormStore) DeleteScope(scope Scope, ownerID *uint) (int64, error) {
	q := s.db.Where("scope = ?", string(scope))
	if ownerID == nil {
		q = q.Where("scope_owner_id IS NULL")
	} else {
		q = q.Where("scope_owner_id = ?", *ownerID)
	}

	result := q.Delete(&models.TabConfig{})
	return result.RowsAffected, result.Error
}

func (s *GormStore) SetDisplayOrders(orders map[uint]int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&models.TabConfig{}).
				Where("id = ?", id).
				Update("display_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) RoleOrganization(roleID uint) (uint, error) {
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return role.OrganizationID, nil
}

// WithKeyLock runs fn in a transaction holding row locks on every record
// for the key, closing the window between a visibility-guard read and its
// commit. SQLite has no FOR UPDATE and serializes writers natively, so
// the locking clause is skipped there.
func (s *GormStore) WithKeyLock(key string, fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("tab_key = ?", key)
		if s.db.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked []models.TabConfig
		if err := q.Find(&locked).Error; err != nil {
			return err
		}
		return fn(&GormStore{db: tx})
	})
}
