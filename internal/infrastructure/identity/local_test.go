package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "dev-secret"
	testAudience = "client-id"
)

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   LocalIssuer,
		"aud":   testAudience,
		"sub":   "1234",
		"email": "ada@example.com",
		"name":  "Ada Lovelace",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestLocalVerifier_Valid(t *testing.T) {
	v, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), sign(t, testSecret, jwt.SigningMethodHS256, validClaims()), testAudience)
	require.NoError(t, err)
	assert.Equal(t, "1234", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)
}

func TestLocalVerifier_Rejects(t *testing.T) {
	v, err := NewLocalVerifier(testSecret)
	require.NoError(t, err)

	mutate := func(f func(jwt.MapClaims)) jwt.MapClaims {
		c := validClaims()
		f(c)
		return c
	}

	cases := map[string]string{
		"wrong secret":   sign(t, "other", jwt.SigningMethodHS256, validClaims()),
		"wrong audience": sign(t, testSecret, jwt.SigningMethodHS256, mutate(func(c jwt.MapClaims) { c["aud"] = "someone-else" })),
		"wrong issuer":   sign(t, testSecret, jwt.SigningMethodHS256, mutate(func(c jwt.MapClaims) { c["iss"] = "https://accounts.google.com" })),
		"expired":        sign(t, testSecret, jwt.SigningMethodHS256, mutate(func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() })),
		"no expiry":      sign(t, testSecret, jwt.SigningMethodHS256, mutate(func(c jwt.MapClaims) { delete(c, "exp") })),
		"wrong alg":      sign(t, testSecret, jwt.SigningMethodHS512, validClaims()),
		"no email":       sign(t, testSecret, jwt.SigningMethodHS256, mutate(func(c jwt.MapClaims) { delete(c, "email") })),
		"malformed":      "not-a-token",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token, testAudience)
			assert.Error(t, err)
		})
	}
}

func TestNewLocalVerifier_EmptySecret(t *testing.T) {
	_, err := NewLocalVerifier("")
	assert.Error(t, err)
}
