// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
	"codeberg.org/qrmenu/qrmenu-server/internal/services/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/testutil"
)

// captureSender records dispatched codes instead of sending mail.
type captureSender struct {
	lastEmail string
	lastCode  string
	fail      bool
}

func (s *captureSender) SendOTP(_ context.Context, toEmail, code string) error {
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.lastEmail = toEmail
	s.lastCode = code
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *repository.Repository, *captureSender) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	sender := &captureSender{}
	return auth.NewService(repo, sender), repo, sender
}

func TestSignup(t *testing.T) {
	svc, repo, sender := newTestService(t)
	ctx := context.Background()

	err := svc.Signup(ctx, "ana@example.com", "Ana", "IN")

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sender.lastEmail)
	assert.Len(t, sender.lastCode, 6)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.OTP)
	assert.Equal(t, sender.lastCode, *user.OTP)
	require.NotNil(t, user.OTPExpiresAt)
	assert.WithinDuration(t, time.Now().Add(auth.OTPTTL), *user.OTPExpiresAt, time.Minute)
}

func TestSignup_EmailTaken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))

	err := svc.Signup(ctx, "ana@example.com", "Another Ana", "IN")

	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSignup_InvalidEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Signup(context.Background(), "not-an-email", "Ana", "IN")

	assert.ErrorIs(t, err, auth.ErrInvalidEmail)
}

func TestSignup_SendFailure(t *testing.T) {
	svc, repo, sender := newTestService(t)
	sender.fail = true
	ctx := context.Background()

	err := svc.Signup(ctx, "ana@example.com", "Ana", "IN")

	require.Error(t, err)
	// No user record without a delivered code
	_, err = repo.GetUserByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Login(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestLogin_ReplacesPriorCode(t *testing.T) {
	svc, _, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))
	firstCode := sender.lastCode

	require.NoError(t, svc.Login(ctx, "ana@example.com"))
	secondCode := sender.lastCode

	// The earlier unconsumed code no longer verifies
	if firstCode != secondCode {
		_, err := svc.VerifyOTP(ctx, "ana@example.com", firstCode)
		assert.ErrorIs(t, err, auth.ErrInvalidOTP)
	}

	user, err := svc.VerifyOTP(ctx, "ana@example.com", secondCode)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestVerifyOTP_Success(t *testing.T) {
	svc, _, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))

	user, err := svc.VerifyOTP(ctx, "ana@example.com", sender.lastCode)

	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestVerifyOTP_SingleUse(t *testing.T) {
	svc, _, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))

	_, err := svc.VerifyOTP(ctx, "ana@example.com", sender.lastCode)
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, "ana@example.com", sender.lastCode)
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc, _, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))

	wrong := "000000"
	if sender.lastCode == wrong {
		wrong = "000001"
	}
	_, err := svc.VerifyOTP(ctx, "ana@example.com", wrong)

	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestVerifyOTP_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.VerifyOTP(context.Background(), "nobody@example.com", "123456")

	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "ana@example.com", "123456")
	require.NoError(t, repo.SetUserOTP(ctx, "ana@example.com", "123456", time.Now().Add(-time.Minute)))

	// Exact match, but past the validity window
	_, err := svc.VerifyOTP(ctx, "ana@example.com", "123456")

	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestVerifyOTP_NoChallengePending(t *testing.T) {
	svc, repo, sender := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ana@example.com", "Ana", "IN"))
	_, err := svc.VerifyOTP(ctx, "ana@example.com", sender.lastCode)
	require.NoError(t, err)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Nil(t, user.OTP)

	_, err = svc.VerifyOTP(ctx, "ana@example.com", "123456")
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}
