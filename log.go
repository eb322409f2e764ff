package scoring

import "log"

// logf reports a non-fatal condition the way the teacher's
// validateSchema does: a warning that does not prevent the caller from
// continuing (spec.md §7: MissingOverride, CallbackThrow, and
// OfflineStorageUnavailable are all "log and continue", never fatal).
func logf(format string, args ...any) {
	log.Printf(format, args...)
}
