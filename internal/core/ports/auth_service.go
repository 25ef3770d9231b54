package ports

import (
	"context"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// CredentialService covers the mock-credential flow: password login and
// bearer token resolution.
type CredentialService interface {
	// Login checks a username/password pair and returns the access token.
	Login(ctx context.Context, username, password string) (string, error)
	// Resolve maps an access token back to its user record.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// IdentityService verifies tokens issued by the external identity provider.
type IdentityService interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.IdentityClaims, error)
}
