package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storing alongside the user record.
func HashPassword(password []byte) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash []byte, password []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}
