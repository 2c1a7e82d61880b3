package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := []byte("test-secret")
	token, claims, err := GenerateToken(secret, "admin", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected token id")
	}

	parsed, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if parsed.Operator != "admin" || parsed.ID != claims.ID {
		t.Fatalf("unexpected claims %+v", parsed)
	}
}

func TestValidateRejectsBadTokens(t *testing.T) {
	secret := []byte("test-secret")

	if _, err := ValidateToken(secret, ""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token, got %v", err)
	}

	expired, _, _ := GenerateToken(secret, "admin", time.Hour, time.Now().Add(-2*time.Hour))
	if _, err := ValidateToken(secret, expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}

	other, _, _ := GenerateToken([]byte("other"), "admin", time.Hour, time.Now())
	if _, err := ValidateToken(secret, other); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature mismatch to fail, got %v", err)
	}
}
