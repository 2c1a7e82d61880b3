package service

import (
	"errors"
	"testing"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"

	"go.uber.org/zap"
)

func newTestAuth(t *testing.T) AuthService {
	t.Helper()
	op := model.Operator{Name: "admin"}
	if err := op.SetPassword("admin123"); err != nil {
		t.Fatalf("hash: %v", err)
	}
	return NewAuthService(op, "test-secret", time.Hour, zap.NewNop(), time.Now)
}

func TestLogin(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.Operator != "admin" {
		t.Fatalf("unexpected response %+v", resp)
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Operator != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.Login("admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login("someone", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
