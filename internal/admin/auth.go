// Package admin implements the back-office operations of the agency site.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login
var ErrInvalidCredentials = errors.New("admin: invalid credentials")

// Authenticator checks administrator credentials. Session handling belongs to
// the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// BcryptAuthenticator accepts exactly one configured administrator
type BcryptAuthenticator struct {
	email string
	hash  []byte
}

var _ Authenticator = (*BcryptAuthenticator)(nil)

// NewBcryptAuthenticator validates the configured hash up front
func NewBcryptAuthenticator(email, passwordHash string) (*BcryptAuthenticator, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("admin: email is required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin: password hash: %w", err)
	}
	return &BcryptAuthenticator{email: strings.ToLower(email), hash: []byte(passwordHash)}, nil
}

// Authenticate compares email and password without revealing which one failed
func (a *BcryptAuthenticator) Authenticate(_ context.Context, email, password string) error {
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(a.email)) == 1

	// always run bcrypt so timing does not depend on the email
	pwErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !emailOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("admin: password is required")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("admin: hash password: %w", err)
	}
	return string(b), nil
}
