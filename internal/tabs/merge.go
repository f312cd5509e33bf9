package tabs

import (
	"sort"

	"github.com/vitalhq/medboard/backend/internal/models"
)

// Merge folds a candidate set into the viewer-effective tab sequence: one
// record per key (the record at the highest-priority scope present),
// hidden records dropped, ordered by display_order with key as the
// deterministic tie-breaker.
//
// A key defined only at a weaker scope falls through untouched — a user
// override shadows the role record for its own key and nothing else.
func Merge(candidates []models.TabConfig) []models.TabConfig {
	effective := foldByKey(candidates)

	out := make([]models.TabConfig, 0, len(effective))
	for _, rec := range effective {
		if rec.IsVisible {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Key < out[j].Key
	})

	return out
}

// foldByKey keeps the highest-priority record per key. Ties cannot occur:
// at most one record exists per (key, scope, owner) and a candidate set
// holds at most one owner per scope.
func foldByKey(candidates []models.TabConfig) map[string]models.TabConfig {
	effective := make(map[string]models.TabConfig, len(candidates))
	for _, rec := range candidates {
		current, ok := effective[rec.Key]
		if !ok || Scope(rec.Scope).Priority() > Scope(current.Scope).Priority() {
			effective[rec.Key] = rec
		}
	}
	return effective
}

// effectiveForKey returns the record that currently wins the merge for a
// single key, or nil when the key is absent from the candidate set.
func effectiveForKey(candidates []models.TabConfig, key string) *models.TabConfig {
	var winner *models.TabConfig
	for i := range candidates {
		rec := &candidates[i]
		if rec.Key != key {
			continue
		}
		if winner == nil || Scope(rec.Scope).Priority() > Scope(winner.Scope).Priority() {
			winner = rec
		}
	}
	return winner
}
