package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/middleware"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/pkg/api"
)

// toConnectError maps the models sentinels onto connect codes. The sentinel itself is
// reported in the api.ReasonHeader metadata.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code, reason := connect.CodeInternal, ""
	switch {
	case errors.Is(err, models.ErrValidation):
		code, reason = connect.CodeInvalidArgument, api.ReasonInvalid
	case errors.Is(err, models.ErrNotFound):
		code, reason = connect.CodeNotFound, api.ReasonNotFound
	case errors.Is(err, models.ErrUnauthorized):
		code, reason = connect.CodePermissionDenied, api.ReasonUnauthorized
	case errors.Is(err, models.ErrNotMember):
		code, reason = connect.CodeFailedPrecondition, api.ReasonNotMember
	case errors.Is(err, models.ErrInsufficientFunds):
		code, reason = connect.CodeFailedPrecondition, api.ReasonInsufficientFunds
	case errors.Is(err, models.ErrConflict):
		code, reason = connect.CodeAborted, api.ReasonConflict
	case errors.Is(err, models.ErrStoreUnavailable):
		code, reason = connect.CodeUnavailable, api.ReasonUnavailable
	}

	connectErr = connect.NewError(code, err)
	if reason != "" {
		connectErr.Meta().Set(api.ReasonHeader, reason)
	}
	return connectErr
}

// callerID returns the authenticated user of the request.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("no authenticated user"))
	}
	return userID, nil
}
