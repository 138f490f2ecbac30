// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package ctxkeys defines typed context keys used across packages.
package ctxkeys

// Identity is the context key for the authenticated caller identity.
type Identity struct{}
