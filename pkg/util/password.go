package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost for stored credentials. Existing hashes stay valid if this
// changes; they verify at the cost they were created with.
const bcryptCost = 12

// HashPassword derives a bcrypt hash for storage; the plain text is never
// persisted.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
