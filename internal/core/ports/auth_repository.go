package ports

import (
	"context"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// UserRepository is the read-only credential store. FindByUsername returns
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
