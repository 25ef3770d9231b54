// Package identity verifies ID tokens issued by external identity providers.
package identity

import (
	"errors"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

var ErrMissingEmail = errors.New("identity: token has no email claim")

// claimsFromMap extracts the profile claims the service relies on.
func claimsFromMap(subject string, m map[string]any) (*domain.IdentityClaims, error) {
	email, _ := m["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}
	name, _ := m["name"].(string)
	if name == "" {
		name = email
	}
	return &domain.IdentityClaims{
		Subject: subject,
		Email:   email,
		Name:    name,
		Claims:  m,
	}, nil
}
