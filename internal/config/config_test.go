// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host     string
		expected bool
	}{
		{"", true},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"app.localhost", true},
		{"sub.domain.localhost", true},
		{"example.com", false},
		{"www.example.com", false},
		{"192.168.1.1", false},
		{"localhost.com", false}, // not a real localhost
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocalhost(tt.host))
		})
	}
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret is required")
}

func TestValidate_WithJWTSecret(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "test-secret"}}

	assert.NoError(t, cfg.Validate())
}

func TestMailConfigured(t *testing.T) {
	tests := []struct {
		name     string
		smtp     SMTPConfig
		expected bool
	}{
		{"empty", SMTPConfig{}, false},
		{"host only", SMTPConfig{Host: "smtp.example.com"}, false},
		{"from only", SMTPConfig{From: "noreply@example.com"}, false},
		{"host and from", SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SMTP: tt.smtp}
			assert.Equal(t, tt.expected, cfg.MailConfigured())
		})
	}
}

func TestCookieSecure(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{"localhost http", Config{Server: ServerConfig{Host: "localhost", BaseURL: "http://localhost:8080"}}, false},
		{"https base url", Config{Server: ServerConfig{Host: "localhost", BaseURL: "https://app.example.com"}}, true},
		{"remote host", Config{Server: ServerConfig{Host: "example.com", BaseURL: "http://example.com"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.CookieSecure())
		})
	}
}

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{"localhost with port", "localhost", 8080, "http://localhost:8080"},
		{"localhost default http port", "localhost", 80, "http://localhost"},
		{"remote host", "example.com", 443, "https://example.com"},
		{"remote host custom port", "example.com", 8443, "https://example.com:8443"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Host: tt.host, Port: tt.port}}
			assert.Equal(t, tt.expected, buildBaseURL(cfg))
		})
	}
}
