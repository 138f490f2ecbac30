// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/qrmenu/qrmenu-server/internal/models"
)

// CreateUser creates a new user with a pending OTP challenge.
func (r *Repository) CreateUser(ctx context.Context, email, name, country, otp string, otpExpiresAt time.Time) (*models.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, country, otp, otp_expires_at) VALUES (?, ?, ?, ?, ?)`,
		email, name, country, otp, otpExpiresAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// SetUserOTP replaces the user's OTP challenge, invalidating any previously
// issued unconsumed code.
func (r *Repository) SetUserOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET otp = ?, otp_expires_at = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		otp, expiresAt, email)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeUserOTP clears the OTP challenge, but only if the stored code still
// matches. The conditional write is the serialization point for concurrent
// verification attempts: only the first racer observes the row as matching,
// the rest see zero rows affected.
func (r *Repository) ConsumeUserOTP(ctx context.Context, email, otp string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET otp = NULL, otp_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE email = ? AND otp = ?`,
		email, otp)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
