package identity

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// Google signs ID tokens with either issuer form.
var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

// GoogleVerifier validates Google-issued OAuth2 ID tokens: signature against
// Google's published certificates, expiry, audience and issuer.
type GoogleVerifier struct {
	validator *idtoken.Validator
}

// NewGoogleVerifier builds a verifier. httpClient is used to fetch signing
// certificates; nil selects the library default.
func NewGoogleVerifier(ctx context.Context, httpClient *http.Client) (*GoogleVerifier, error) {
	var opts []idtoken.ClientOption
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("idtoken validator: %w", err)
	}
	return &GoogleVerifier{validator: v}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawToken, audience string) (*domain.IdentityClaims, error) {
	payload, err := g.validator.Validate(ctx, rawToken, audience)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}
	if _, ok := googleIssuers[payload.Issuer]; !ok {
		return nil, fmt.Errorf("validate id token: unexpected issuer %q", payload.Issuer)
	}
	return claimsFromMap(payload.Subject, payload.Claims)
}
