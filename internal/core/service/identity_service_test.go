package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

type stubVerifier struct {
	verifyFn func(ctx context.Context, rawToken, audience string) (*domain.IdentityClaims, error)
}

func (v *stubVerifier) Verify(ctx context.Context, rawToken, audience string) (*domain.IdentityClaims, error) {
	return v.verifyFn(ctx, rawToken, audience)
}

func TestIdentityService_Authenticate_Success(t *testing.T) {
	v := &stubVerifier{verifyFn: func(_ context.Context, rawToken, audience string) (*domain.IdentityClaims, error) {
		if rawToken != "id-token" || audience != "client-id" {
			t.Fatalf("unexpected args: %s %s", rawToken, audience)
		}
		return &domain.IdentityClaims{Email: "ada@example.com", Name: "Ada"}, nil
	}}
	svc := NewIdentityService(v, "client-id", time.Second, zerolog.Nop())

	claims, err := svc.Authenticate(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if claims.Email != "ada@example.com" || claims.Name != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIdentityService_Authenticate_HidesCause(t *testing.T) {
	v := &stubVerifier{verifyFn: func(context.Context, string, string) (*domain.IdentityClaims, error) {
		return nil, errors.New("idtoken: audience provided does not match aud claim in the JWT")
	}}
	svc := NewIdentityService(v, "client-id", time.Second, zerolog.Nop())

	_, err := svc.Authenticate(context.Background(), "id-token")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if err != domain.ErrInvalidIdentityToken {
		t.Fatalf("verifier message leaked: %v", err)
	}
}

func TestIdentityService_Authenticate_Timeout(t *testing.T) {
	v := &stubVerifier{verifyFn: func(ctx context.Context, _, _ string) (*domain.IdentityClaims, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := NewIdentityService(v, "client-id", 10*time.Millisecond, zerolog.Nop())

	start := time.Now()
	_, err := svc.Authenticate(context.Background(), "id-token")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential on timeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestIdentityService_Authenticate_EmptyToken(t *testing.T) {
	v := &stubVerifier{verifyFn: func(context.Context, string, string) (*domain.IdentityClaims, error) {
		t.Fatalf("verifier should not be called")
		return nil, nil
	}}
	svc := NewIdentityService(v, "client-id", 0, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestIdentityService_Authenticate_MissingEmail(t *testing.T) {
	v := &stubVerifier{verifyFn: func(context.Context, string, string) (*domain.IdentityClaims, error) {
		return &domain.IdentityClaims{Subject: "123", Name: "No Mail"}, nil
	}}
	svc := NewIdentityService(v, "client-id", time.Second, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "id-token"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
