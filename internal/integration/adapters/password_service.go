// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/fin-mate/backend/internal/application/adapter"
)

// passwordService hashes and checks user passwords with bcrypt.
type passwordService struct {
	cost int
}

// NewPasswordService returns the bcrypt-backed password service. A cost
// of 12 keeps login latency tolerable on current hardware.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{cost: 12}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports a mismatch between the stored hash and the
// supplied password as an error.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords shorter than eight characters.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
