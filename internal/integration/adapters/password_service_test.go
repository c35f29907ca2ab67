package adapters

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordServiceHashAndVerify(t *testing.T) {
	svc := &passwordService{cost: bcrypt.MinCost}

	hash, err := svc.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if err := svc.VerifyPassword(hash, "correct-horse"); err != nil {
		t.Errorf("matching password must verify: %v", err)
	}
	if err := svc.VerifyPassword(hash, "battery-staple"); err == nil {
		t.Error("wrong password must not verify")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	svc := &passwordService{cost: bcrypt.MinCost}

	if err := svc.ValidatePasswordStrength("short"); err == nil {
		t.Error("expected a password under eight characters to be rejected")
	}
	if err := svc.ValidatePasswordStrength("longenough"); err != nil {
		t.Errorf("unexpected error for a valid password: %v", err)
	}
}
