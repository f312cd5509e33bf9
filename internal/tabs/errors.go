package tabs

import "errors"

// Every failure mode of the engine is a distinct sentinel so the route
// layer can map each one to an HTTP status. All are detected before any
// write; no operation leaves a partial mutation behind.
var (
	// ErrUnauthorized marks an ownership or scope mismatch between the
	// caller and the targeted record or scope.
	ErrUnauthorized = errors.New("tabs: caller is not authorized for this scope or record")

	// ErrNotFound marks a referenced record or key that does not resolve.
	ErrNotFound = errors.New("tabs: record not found")

	// ErrSystemDefaultImmutable marks an attempted direct mutation of a
	// system seed record.
	ErrSystemDefaultImmutable = errors.New("tabs: system default records are immutable")

	// ErrMandatoryTab marks an attempt to hide a tab flagged mandatory.
	ErrMandatoryTab = errors.New("tabs: mandatory tabs cannot be hidden")

	// ErrWouldHideAllTabs marks a hide that would leave the viewer's
	// merged tab set with nothing visible.
	ErrWouldHideAllTabs = errors.New("tabs: operation would hide every remaining tab")

	// ErrDuplicateKey marks a create that collides with an existing
	// record at the same (key, scope, owner).
	ErrDuplicateKey = errors.New("tabs: a record with this key already exists at this scope")

	// ErrPartialIDSet marks a reorder batch referencing unknown ids.
	ErrPartialIDSet = errors.New("tabs: reorder batch references unknown records")
)
