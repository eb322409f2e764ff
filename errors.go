package scoring

import "errors"

// Sentinel errors for set-algebra and lifecycle setup failures (spec.md
// §7). Most of these indicate programming errors in the host application,
// not runtime conditions; use the Is*Err helpers to branch on them.
var (
	// ErrDuplicateSetID is returned by Registry.Register when a root set's
	// id collides with an already-registered root set (spec.md Invariant 1).
	// This is fatal: the caller must fix the id collision before retrying.
	ErrDuplicateSetID = errors.New("scoring: duplicate root set id")

	// ErrNotRegistered is returned when deregistering a set the registry
	// does not hold.
	ErrNotRegistered = errors.New("scoring: set is not registered")

	// ErrOfflineStorageUnavailable names an unavailable offline store. The
	// State and Objective writers in this package do not return it: with no
	// OfflineStorage port configured they log and return nil, a silent
	// no-op per spec.md §7.
	ErrOfflineStorageUnavailable = errors.New("scoring: offline storage unavailable")

	// ErrUnsupportedStateShape is returned by State.Set when the value is
	// not a []bool, []float64, or a slice of either (spec.md §4.3).
	ErrUnsupportedStateShape = errors.New("scoring: state value must be []bool, []float64, or a slice of those")

	// ErrIntersectedClone is returned by Registry.Register and
	// Registry.Deregister when given an intersected clone (spec.md
	// Invariant 2). A set's Update and Reset triggers return nothing and are
	// silent no-ops on a clone.
	ErrIntersectedClone = errors.New("scoring: operation not valid on an intersected clone")
)

// IsDuplicateSetIDErr reports whether err is or wraps ErrDuplicateSetID.
func IsDuplicateSetIDErr(err error) bool { return errors.Is(err, ErrDuplicateSetID) }

// IsNotRegisteredErr reports whether err is or wraps ErrNotRegistered.
func IsNotRegisteredErr(err error) bool { return errors.Is(err, ErrNotRegistered) }

// IsOfflineStorageUnavailableErr reports whether err is or wraps
// ErrOfflineStorageUnavailable.
func IsOfflineStorageUnavailableErr(err error) bool {
	return errors.Is(err, ErrOfflineStorageUnavailable)
}

// IsUnsupportedStateShapeErr reports whether err is or wraps
// ErrUnsupportedStateShape.
func IsUnsupportedStateShapeErr(err error) bool {
	return errors.Is(err, ErrUnsupportedStateShape)
}

// IsIntersectedCloneErr reports whether err is or wraps ErrIntersectedClone.
func IsIntersectedCloneErr(err error) bool { return errors.Is(err, ErrIntersectedClone) }
