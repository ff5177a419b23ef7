// Package services holds the business rules between controllers and
// repositories.
package services

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/soutoura/soutoura/config"
)

// ErrInvalidCredentials is returned when the login attempt does not match
// the owner account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Verifier checks a password attempt against the configured owner secret.
type Verifier interface {
	Verify(password string) bool
}

// PlainVerifier compares against the plaintext OWNER_PASSWORD in constant
// time.
type PlainVerifier struct {
	secret string
}

func (v PlainVerifier) Verify(password string) bool {
	return subtle.ConstantTimeCompare([]byte(v.secret), []byte(password)) == 1
}

// BcryptVerifier compares against a bcrypt hash. Used when
// OWNER_PASSWORD_HASH is set, which keeps the plaintext out of the
// environment entirely.
type BcryptVerifier struct {
	hash string
}

func (v BcryptVerifier) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(password)) == nil
}

// AuthService gates the owner dashboard. There is exactly one account,
// configured through the environment; no user table backs it.
type AuthService struct {
	ownerEmail string
	verifier   Verifier
}

func NewAuthService() *AuthService {
	if hash := config.OwnerPasswordHash(); hash != "" {
		return &AuthService{ownerEmail: config.OwnerEmail(), verifier: BcryptVerifier{hash: hash}}
	}
	return &AuthService{ownerEmail: config.OwnerEmail(), verifier: PlainVerifier{secret: config.OwnerPassword()}}
}

// NewAuthServiceWith builds a service with explicit parts, for tests.
func NewAuthServiceWith(ownerEmail string, v Verifier) *AuthService {
	return &AuthService{ownerEmail: ownerEmail, verifier: v}
}

// Login checks the credentials against the owner account.
func (s *AuthService) Login(creds Credentials) error {
	emailOK := subtle.ConstantTimeCompare([]byte(s.ownerEmail), []byte(creds.Email)) == 1
	passwordOK := s.verifier.Verify(creds.Password)

	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}
