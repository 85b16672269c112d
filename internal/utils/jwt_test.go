package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	token, exp, err := GenerateJWT("u1", "admin@example.com", "Matt", true)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@example.com" || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsTampered(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)
	token, _, err := GenerateJWT("u1", "a@b.c", "A", true)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateJWT(token + "x"); err != ErrInvalidToken {
		t.Errorf("tampered token: err = %v, want ErrInvalidToken", err)
	}

	InitJWT("another-secret", time.Hour)
	if _, err := ValidateJWT(token); err != ErrInvalidToken {
		t.Errorf("foreign secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	InitJWT("unit-test-secret", time.Nanosecond)
	token, _, err := GenerateJWT("u1", "a@b.c", "A", true)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := ValidateJWT(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
	InitJWT("unit-test-secret", time.Hour)
}
