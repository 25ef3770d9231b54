// Package access evaluates bearer requests against an ordered list of gates.
//
// A Chain first resolves the access token to a user record (the
// authentication gate) and then runs each Gate in the order it was added,
// stopping at the first failure. Gates are independent predicates over the
// resolved user; each returns a distinct error kind from the domain package.
package access

import (
	"context"

	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"
)

// Gate is a single pass/fail check over an authenticated user.
type Gate struct {
	Name  string
	Check func(u *domain.User) error
}

// Active fails with ErrInactiveAccount for disabled users.
func Active() Gate {
	return Gate{
		Name: "active",
		Check: func(u *domain.User) error {
			if u.Disabled {
				return domain.ErrInactiveAccount
			}
			return nil
		},
	}
}

// HasRole fails with a *domain.RoleError unless the user holds role.
func HasRole(role domain.Role) Gate {
	return Gate{
		Name: "role:" + string(role),
		Check: func(u *domain.User) error {
			if u.Role != role {
				return &domain.RoleError{Required: role, Actual: u.Role}
			}
			return nil
		},
	}
}

// Resolver maps an access token to a user record.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

var _ Resolver = (ports.CredentialService)(nil)

// Decision records where evaluation stopped. Gate is "authenticated" when the
// resolver failed and empty when every gate passed.
type Decision struct {
	User *domain.User
	Gate string
	Err  error
}

// Chain is an immutable, ordered gate sequence bound to a resolver.
type Chain struct {
	resolver Resolver
	gates    []Gate
}

func NewChain(resolver Resolver, gates ...Gate) *Chain {
	return &Chain{resolver: resolver, gates: append([]Gate(nil), gates...)}
}

// With returns a new chain that runs c's gates followed by gates.
func (c *Chain) With(gates ...Gate) *Chain {
	merged := make([]Gate, 0, len(c.gates)+len(gates))
	merged = append(merged, c.gates...)
	merged = append(merged, gates...)
	return &Chain{resolver: c.resolver, gates: merged}
}

// GateAuthenticated names the resolver step in a Decision.
const GateAuthenticated = "authenticated"

// Evaluate runs the chain and reports where it stopped.
func (c *Chain) Evaluate(ctx context.Context, token string) Decision {
	if token == "" {
		return Decision{Gate: GateAuthenticated, Err: domain.ErrUnauthenticated}
	}

	user, err := c.resolver.Resolve(ctx, token)
	if err != nil {
		return Decision{Gate: GateAuthenticated, Err: err}
	}
	if user == nil {
		return Decision{Gate: GateAuthenticated, Err: domain.ErrUnauthenticated}
	}

	for _, g := range c.gates {
		if err := g.Check(user); err != nil {
			return Decision{User: user, Gate: g.Name, Err: err}
		}
	}
	return Decision{User: user}
}
