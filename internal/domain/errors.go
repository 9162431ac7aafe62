package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// Validation errors reject an operation before any mutation. Store errors
// mean the underlying action may not have persisted. A corrupt record is
// not surfaced to callers: the engine falls back to defaults and logs it.

var (
	// Validation errors
	ErrEmptyUserID       = errors.New("user id must not be empty")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrUnknownReportKind = errors.New("unknown report kind")

	// Store errors
	ErrStoreUnavailable = errors.New("progression store unavailable")
	ErrCorruptRecord    = errors.New("corrupt progression record")
)
