package api

import (
	"errors"

	"connectrpc.com/connect"
)

// ReasonHeader carries a machine-readable failure reason in the error metadata.
// Several reasons share a connect code, so clients should branch on the reason.
const ReasonHeader = "Pennypool-Reason"

// Failure reasons.
const (
	ReasonInvalid           = "invalid"
	ReasonNotFound          = "not_found"
	ReasonUnauthorized      = "unauthorized"
	ReasonNotMember         = "not_member"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonConflict          = "conflict"
	ReasonUnavailable       = "unavailable"
)

// ReasonOf returns the failure reason attached to err, or "" if there is none.
func ReasonOf(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ReasonHeader)
}
