package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"
)

const defaultVerifyTimeout = 5 * time.Second

// IdentityService verifies external identity tokens for a fixed audience.
// Every failure, timeouts included, is reported as ErrInvalidIdentityToken.
type IdentityService struct {
	verifier ports.TokenVerifier
	audience string
	timeout  time.Duration
	log      zerolog.Logger
}

func NewIdentityService(verifier ports.TokenVerifier, audience string, timeout time.Duration, log zerolog.Logger) *IdentityService {
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	return &IdentityService{verifier: verifier, audience: audience, timeout: timeout, log: log}
}

func (s *IdentityService) Authenticate(ctx context.Context, rawToken string) (*domain.IdentityClaims, error) {
	if rawToken == "" {
		return nil, domain.ErrInvalidIdentityToken
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	claims, err := s.verifier.Verify(ctx, rawToken, s.audience)
	if err != nil {
		ev := s.log.Warn().Err(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			ev = ev.Bool("timeout", true)
		}
		ev.Msg("identity token rejected")
		return nil, domain.ErrInvalidIdentityToken
	}
	if claims == nil || claims.Email == "" {
		s.log.Warn().Msg("identity token carries no email claim")
		return nil, domain.ErrInvalidIdentityToken
	}

	return claims, nil
}
