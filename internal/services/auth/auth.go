// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package auth implements the OTP login flow: code issuance for signup and
// login, and single-use verification.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"strconv"
	"time"

	"codeberg.org/qrmenu/qrmenu-server/internal/models"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email already in use")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidOTP covers every verification failure (unknown email, missing
	// code, mismatch, expiry) so the response does not leak which check failed.
	ErrInvalidOTP = errors.New("invalid or expired otp")
)

// OTPTTL is the validity window of an issued code.
const OTPTTL = 10 * time.Minute

// Sender dispatches a one-time code to an email address.
type Sender interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}

// Service implements OTP issuance and verification. A nil sender means no
// mail delivery is configured; codes are then surfaced through the log only.
type Service struct {
	repo   *repository.Repository
	sender Sender
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository, sender Sender) *Service {
	return &Service{repo: repo, sender: sender}
}

// Signup registers a new user and issues their first OTP challenge. The code
// is dispatched by email and never returned to the caller.
func (s *Service) Signup(ctx context.Context, email, name, country string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking existing user: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generating otp: %w", err)
	}

	if err := s.dispatch(ctx, email, code); err != nil {
		return fmt.Errorf("dispatching otp: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, name, country, code, time.Now().Add(OTPTTL))
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	slog.Info("signup_otp_issued", "user_id", user.ID, "email", email)
	return nil
}

// Login issues a fresh OTP challenge for an existing user, invalidating any
// previously issued unconsumed code.
func (s *Service) Login(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("getting user: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generating otp: %w", err)
	}

	if err := s.dispatch(ctx, user.Email, code); err != nil {
		return fmt.Errorf("dispatching otp: %w", err)
	}

	if err := s.repo.SetUserOTP(ctx, email, code, time.Now().Add(OTPTTL)); err != nil {
		return fmt.Errorf("storing otp: %w", err)
	}

	slog.Info("login_otp_issued", "user_id", user.ID, "email", email)
	return nil
}

// VerifyOTP validates a submitted code and consumes it on success. The
// check-then-clear is a conditional write keyed on the code still matching,
// so concurrent attempts with the same code succeed at most once.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if user.OTP == nil || *user.OTP != code {
		slog.Warn("otp_verify_failed", "email", email, "reason", "code_mismatch")
		return nil, ErrInvalidOTP
	}
	if user.OTPExpiresAt == nil || !time.Now().Before(*user.OTPExpiresAt) {
		slog.Warn("otp_verify_failed", "email", email, "reason", "expired")
		return nil, ErrInvalidOTP
	}

	consumed, err := s.repo.ConsumeUserOTP(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("consuming otp: %w", err)
	}
	if !consumed {
		// A concurrent verification won the race and cleared the code first.
		slog.Warn("otp_verify_failed", "email", email, "reason", "already_consumed")
		return nil, ErrInvalidOTP
	}

	slog.Info("otp_verify_success", "user_id", user.ID, "email", email)
	return user, nil
}

// dispatch delivers the code by email, or logs it when no mail delivery is
// configured.
func (s *Service) dispatch(ctx context.Context, email, code string) error {
	if s.sender == nil {
		slog.Warn("otp_mail_not_configured", "email", email, "otp", code)
		return nil
	}
	return s.sender.SendOTP(ctx, email, code)
}

// generateOTP returns a 6-digit code uniformly random in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
