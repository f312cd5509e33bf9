package tabs

import "github.com/vitalhq/medboard/backend/internal/models"

// PendingChange is a hypothetical visibility mutation: the record at
// (Key, Scope, OwnerID) takes the value IsVisible, whether or not such a
// record exists yet.
type PendingChange struct {
	Key       string
	Scope     Scope
	OwnerID   *uint
	IsVisible bool
}

// WouldLeaveZeroVisible simulates the merge with the pending change
// applied and reports whether nothing would remain visible. It is a pure
// function of its inputs — no store access — so hide operations can be
// vetted against the same snapshot they will be committed on.
//
// The invariant is whole-set, not per-key: hiding a key is fine as long
// as any key still has a visible effective record.
func WouldLeaveZeroVisible(candidates []models.TabConfig, pending PendingChange) bool {
	simulated := applyPending(candidates, pending)
	return len(Merge(simulated)) == 0
}

// applyPending returns a copy of the candidate set with the pending
// change in place. If no record exists at the pending position, a
// synthetic record is added so the change participates in the fold at
// its target scope's priority.
func applyPending(candidates []models.TabConfig, pending PendingChange) []models.TabConfig {
	out := make([]models.TabConfig, len(candidates))
	copy(out, candidates)

	for i := range out {
		if out[i].Key == pending.Key &&
			Scope(out[i].Scope) == pending.Scope &&
			sameOwner(out[i].ScopeOwnerID, pending.OwnerID) {
			out[i].IsVisible = pending.IsVisible
			return out
		}
	}

	return append(out, models.TabConfig{
		Key:          pending.Key,
		Scope:        string(pending.Scope),
		ScopeOwnerID: pending.OwnerID,
		IsVisible:    pending.IsVisible,
	})
}

func sameOwner(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
