package ports

import (
	"context"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// TokenVerifier validates an identity token for the given audience and
// returns the claims it carries.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken, audience string) (*domain.IdentityClaims, error)
}
