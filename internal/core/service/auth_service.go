package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog"

	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"
)

// fakeHashPrefix is the placeholder transform applied to plaintext passwords.
// It is not a hash; stored records carry the same prefix.
const fakeHashPrefix = "fakehashed"

// FakeHashPassword applies the placeholder password transform.
func FakeHashPassword(password string) string {
	return fakeHashPrefix + password
}

// CredentialService implements password login and access token resolution
// against a read-only user repository. The access token is the username.
type CredentialService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewCredentialService(repo ports.UserRepository, log zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, log: log}
}

func (s *CredentialService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login for unknown user")
			return "", domain.ErrInvalidCredential
		}
		return "", err
	}

	hashed := FakeHashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(user.HashedPassword)) != 1 {
		s.log.Debug().Str("username", username).Msg("password mismatch")
		return "", domain.ErrInvalidCredential
	}

	return user.Username, nil
}

func (s *CredentialService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByUsername(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
