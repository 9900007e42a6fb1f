package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/facegate/facegate/internal/entity"
)

const (
	PINMinLen = 4
	PINMaxLen = 8
)

// ValidatePIN checks the shape of a presented PIN before any lookup
// work. Shape errors are the caller's fault and are reported as input
// errors, not denials.
func ValidatePIN(pin string) error {
	if len(pin) < PINMinLen || len(pin) > PINMaxLen {
		return entity.ErrPinFormat
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			return entity.ErrPinFormat
		}
	}

	return nil
}

// HashPIN validates and bcrypt-hashes a PIN for storage.
func HashPIN(pin string) ([]byte, error) {
	if err := ValidatePIN(pin); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	return hash, nil
}
