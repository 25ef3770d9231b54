package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// UserRepository is an immutable in-process credential store. It is built
// once and safe for any number of concurrent readers.
type UserRepository struct {
	users map[string]*domain.User
}

// NewUserRepository indexes users by username. Duplicate usernames and
// unknown roles are rejected.
func NewUserRepository(users ...*domain.User) (*UserRepository, error) {
	idx := make(map[string]*domain.User, len(users))
	for _, u := range users {
		if u == nil || u.Username == "" {
			return nil, errors.New("user record without username")
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user %q: unknown role %q", u.Username, u.Role)
		}
		if _, dup := idx[u.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		idx[u.Username] = u.Clone()
	}
	return &UserRepository{users: idx}, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}
