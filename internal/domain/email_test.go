package domain

import (
	"errors"
	"testing"
)

func TestNormalizeEmail_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "user@example.com", "user@example.com"},
		{"uppercase", "User@Example.COM", "user@example.com"},
		{"surrounding whitespace", "  user@example.com \n", "user@example.com"},
		{"plus tag", "user+tag@example.com", "user+tag@example.com"},
		{"subdomain", "a@mail.example.co", "a@mail.example.co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.raw)
			if err != nil {
				t.Fatalf("NormalizeEmail(%q): unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing at", "userexample.com"},
		{"missing domain dot", "user@example"},
		{"one-char tld", "user@example.c"},
		{"double at", "user@@example.com"},
		{"space in local", "us er@example.com"},
		{"at only", "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeEmail(tt.raw)
			if err == nil {
				t.Fatalf("NormalizeEmail(%q): expected error", tt.raw)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got %v", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) || ie.Code != "invalid_email" {
				t.Errorf("expected invalid_email code, got %v", err)
			}
		})
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := NormalizeEmail(" MiXeD@Case.Org ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := NormalizeEmail(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once != twice {
		t.Errorf("normalization not idempotent: %q != %q", once, twice)
	}
}
