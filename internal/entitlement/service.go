// Package entitlement implements the redemption state machine and the
// VIP/verified registries. Redeeming a code only marks it used and reports
// its type and value; applying the actual entitlement is left to the caller,
// matching how the admin tooling consumes the API.
package entitlement

import (
	"errors"

	"homepage/internal/docs"
)

var (
	// ErrCodeInvalid covers both an unknown code and an already-used one;
	// callers cannot tell the two apart.
	ErrCodeInvalid = errors.New("code invalid or already used")

	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)

type Service struct {
	registry *docs.Registry
}

func NewService(registry *docs.Registry) *Service {
	return &Service{registry: registry}
}
