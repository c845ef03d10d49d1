package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates that provided login credentials are incorrect.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks submitted credentials against the single configured
// demo account. There is no user store behind it and no server-side session;
// identity is asserted by the cookie alone.
type AuthService interface {
	Authenticate(username, password string) error
	Username() string
}

type authService struct {
	username     string
	passwordHash []byte
}

// NewAuthService hashes the configured password once; the plaintext is not
// retained after construction.
func NewAuthService(username, password string) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &authService{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (s *authService) Authenticate(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *authService) Username() string {
	return s.username
}
