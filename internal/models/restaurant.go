// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package models

import "time"

// Restaurant is owned by exactly one user. Ownership is immutable after
// creation and is the authorization boundary for menu mutations.
type Restaurant struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PublicRestaurant is the subset of restaurant data exposed on the public
// listing.
type PublicRestaurant struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Location string `db:"location" json:"location"`
}
