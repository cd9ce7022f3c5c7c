package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, exp, err := m.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry should be in the future")
	}

	uid, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if uid != "user-123" {
		t.Fatalf("expected subject user-123, got %s", uid)
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _, err := m.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := m.ParseToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	other := NewJWTManager("other", time.Hour)
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestJWTMalformed(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	if _, err := m.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
