package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInactiveAccount   = errors.New("inactive account")
	ErrForbidden         = errors.New("access forbidden")
	ErrNotFound          = errors.New("not found")
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)

	// ErrInvalidIdentityToken is the external-flow form of ErrInvalidCredential.
	ErrInvalidIdentityToken = fmt.Errorf("identity token: %w", ErrInvalidCredential)
)

// RoleError reports that a user lacks the role an endpoint requires.
// It matches ErrForbidden under errors.Is.
type RoleError struct {
	Required Role
	Actual   Role
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("access forbidden: role %q required, got %q", e.Required, e.Actual)
}

func (e *RoleError) Is(target error) bool {
	return target == ErrForbidden
}
