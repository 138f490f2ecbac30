// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package auth provides request-scoped identity helpers.
package auth

import (
	"context"

	"codeberg.org/qrmenu/qrmenu-server/internal/ctxkeys"
)

// Identity is the caller identity resolved from a session token. It lives
// for a single request and is never cached beyond it.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// WithIdentity returns a context carrying the resolved identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxkeys.Identity{}, identity)
}

// GetIdentity returns the resolved identity from the context, or nil if the
// request is unauthenticated.
func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(ctxkeys.Identity{}).(*Identity); ok {
		return identity
	}
	return nil
}

// IsAuthenticated returns true if the context has a resolved identity.
func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}
