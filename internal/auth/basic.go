// Package auth implements the admin gate: HTTP Basic credentials checked
// against the stored admin document on every request. There are no sessions
// or tokens; each request re-authenticates independently.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"homepage/internal/docs"
)

var ErrWrongPassword = errors.New("current password is incorrect")

type Service struct {
	registry *docs.Registry
}

func NewService(registry *docs.Registry) *Service {
	return &Service{registry: registry}
}

// Authenticate reports whether the request carries valid admin credentials.
// A missing, malformed, or non-Basic Authorization header is simply "not
// authenticated". The error is non-nil only when the store read fails.
func (s *Service) Authenticate(ctx context.Context, r *http.Request) (bool, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return false, nil
	}
	return s.VerifyCredentials(ctx, username, password)
}

// VerifyCredentials compares the pair against the stored admin document.
// Comparison is case-sensitive and constant-time; username and password
// failures are indistinguishable.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	creds, err := s.registry.Credentials(ctx)
	if err != nil {
		return false, err
	}

	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
	return userMatch && passMatch, nil
}

// ChangePassword rewrites the credentials document with a new password after
// verifying the current one. The username is left untouched.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	creds, err := s.registry.Credentials(ctx)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(current), []byte(creds.Password)) != 1 {
		return ErrWrongPassword
	}

	creds.Password = next
	return s.registry.SaveCredentials(ctx, creds)
}
