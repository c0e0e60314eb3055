package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash generates a bcrypt hash of the given plain-text password.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(h), nil
}

// CompareHashAndPlain compares a bcrypt hash with a plain-text password.
// Returns true if the password matches the hash, false if it doesn't,
// or an error if the hash itself is malformed.
func CompareHashAndPlain(hash, plain string) (bool, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// GenerateHashed generates a password with g and returns it along with its
// bcrypt hash, ready to be stored.
func (g *Generator) GenerateHashed() (plain, hash string, err error) {
	plain, err = g.Generate()
	if err != nil {
		return "", "", err
	}

	hash, err = Hash(plain)
	if err != nil {
		return "", "", err
	}

	return plain, hash, nil
}
