package controllers

import (
	"context"

	"github.com/angelmondragon/secondnest/api/middleware"
	"github.com/angelmondragon/secondnest/internal/state"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
)

// sessionState scopes the shared state store to the caller's session.
func sessionState(ctx context.Context, store state.Store) (state.Store, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "state store unavailable")
	}
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "session context missing")
	}
	return state.Scoped(store, sessionID), nil
}

// stateError keeps typed errors and maps backend failures to a dependency error.
func stateError(err error, step string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state backend").
		WithDetails(map[string]any{"step": step})
}
