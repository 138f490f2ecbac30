// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package token mints and validates stateless session tokens. Validity is
// determined entirely by signature and embedded expiry; nothing is stored
// server-side.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie carrying the token.
	CookieName = "auth_token"
	// TTL is how long a session token is valid.
	TTL = 7 * 24 * time.Hour
)

var (
	ErrMissingSecret = errors.New("signing secret must not be empty")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims are the session token claims binding a user identity to a validity
// window.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and validates session tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	secure bool
}

// NewService creates a token service. The secret is required; there is no
// default fallback.
func NewService(secret string, cookieSecure bool) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{secret: []byte(secret), secure: cookieSecure}, nil
}

// Issue mints a signed session token for the given identity.
func (s *Service) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a session token. Expired or tampered tokens
// fail with ErrInvalidToken.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Cookie wraps a signed token in the session cookie. Max age matches the
// token's own expiry.
func (s *Service) Cookie(signed string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie returns a cookie that removes the session cookie.
func (s *Service) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
