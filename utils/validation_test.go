package utils

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{name: "valid", password: "Passw0rd!", ok: true},
		{name: "too short", password: "Pw0rd!", ok: false},
		{name: "no uppercase", password: "passw0rd!", ok: false},
		{name: "no lowercase", password: "PASSW0RD!", ok: false},
		{name: "no digit", password: "Password!", ok: false},
		{name: "no special char", password: "Passw0rdX", ok: false},
		{name: "empty", password: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok && err != nil {
				t.Fatalf("expected password to pass, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected password %q to be rejected", tc.password)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{name: "valid", email: "a@x.com", ok: true},
		{name: "missing at", email: "ax.com", ok: false},
		{name: "empty", email: "", ok: false},
		{name: "spaces only", email: "   ", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if tc.ok && err != nil {
				t.Fatalf("expected email to pass, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected email %q to be rejected", tc.email)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("expected normalized address, got %q", got)
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateVerificationCode()
		if len(code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("expected only digits, got %q", code)
		}
	}
}
