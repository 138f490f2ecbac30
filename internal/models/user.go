// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package models

import "time"

// User is a restaurant owner identified by email. OTP and OTPExpiresAt are
// the transient login challenge: both set while a code is pending, both nil
// otherwise, never one without the other.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	Country      string     `db:"country" json:"country"`
	OTP          *string    `db:"otp" json:"-"`
	OTPExpiresAt *time.Time `db:"otp_expires_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
