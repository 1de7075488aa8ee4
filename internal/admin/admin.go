// Package admin gates the management surface behind the shared admin PIN.
package admin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

// Verifier compares candidates against the configured PIN. Only the bcrypt
// hash is kept after start-up.
type Verifier struct {
	hash []byte
}

func NewVerifier(pin string) (*Verifier, error) {
	return newVerifier(pin, bcrypt.DefaultCost)
}

func newVerifier(pin string, cost int) (*Verifier, error) {
	if pin == "" {
		return nil, errors.New("admin: empty PIN")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return nil, err
	}
	return &Verifier{hash: hash}, nil
}

func (v *Verifier) Verify(candidate string) error {
	if bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) != nil {
		return apperr.Auth("Invalid PIN")
	}
	return nil
}
