// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/qrmenu/qrmenu-server/internal/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/i18n"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
	authsvc "codeberg.org/qrmenu/qrmenu-server/internal/services/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/services/token"
)

// AuthHandlers contains handlers for the OTP login flow.
type AuthHandlers struct {
	auth   *authsvc.Service
	tokens *token.Service
	repo   *repository.Repository
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(svc *authsvc.Service, tokens *token.Service, repo *repository.Repository) *AuthHandlers {
	return &AuthHandlers{auth: svc, tokens: tokens, repo: repo}
}

// SignupRequest is the request body for signup.
type SignupRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Signup registers a new user and sends their first OTP.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if len(req.Name) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name must be at least 2 characters"})
	}
	if len(req.Country) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "country must be at least 2 characters"})
	}

	ctx := c.Request().Context()
	if err := h.auth.Signup(ctx, req.Email, req.Name, req.Country); err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "please enter a valid email address"})
		case errors.Is(err, authsvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, map[string]string{"error": i18n.T(ctx, "email_taken")})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": i18n.T(ctx, "login_failed")})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": i18n.T(ctx, "otp_sent"),
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email string `json:"email"`
}

// Login issues a fresh OTP for an existing user.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	ctx := c.Request().Context()
	if err := h.auth.Login(ctx, req.Email); err != nil {
		if errors.Is(err, authsvc.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": i18n.T(ctx, "user_not_found")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": i18n.T(ctx, "login_failed")})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": i18n.T(ctx, "otp_sent"),
	})
}

// VerifyOTPRequest is the request body for OTP verification.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP validates a submitted code and, on success, sets the session
// cookie.
func (h *AuthHandlers) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	ctx := c.Request().Context()
	user, err := h.auth.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidOTP) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": i18n.T(ctx, "invalid_otp")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": i18n.T(ctx, "login_failed")})
	}

	signed, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}
	c.SetCookie(h.tokens.Cookie(signed))

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Me returns the current caller's identity.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	identity := auth.GetIdentity(ctx)

	user, err := h.repo.GetUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": i18n.T(ctx, "unauthorized")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// embedded expiry; nothing is tracked server-side.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.tokens.ClearCookie())
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
