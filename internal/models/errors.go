package models

import "errors"

// Failure taxonomy shared by every layer. Callers match with errors.Is; wrapped errors
// carry the details.
var (
	// ErrValidation reports malformed input, rejected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound reports a missing user, record, group or challenge.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports a non-owner attempting an owner-gated mutation.
	ErrUnauthorized = errors.New("caller is not the owner")
	// ErrNotMember reports a contribution to a target the user has not joined.
	ErrNotMember = errors.New("user is not a member of the target")
	// ErrInsufficientFunds reports a contribution larger than the user's net worth.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict reports a concurrent modification detected by the store.
	// Callers should retry the operation.
	ErrConflict = errors.New("concurrent modification")
	// ErrStoreUnavailable reports a transport or connection failure of the store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
