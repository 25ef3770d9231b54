// Package session implements ports.SessionStore on top of signed cookies or
// server-side scs sessions.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// CookieName is the cookie that carries the session handle or payload.
const CookieName = "session"

type cookieValues map[string]domain.SessionUser

// CookieStore keeps the whole session in a signed cookie. Nothing is stored
// server side; a cookie with a bad signature reads as an empty session.
type CookieStore struct {
	codec    *securecookie.SecureCookie
	lifetime time.Duration
	secure   bool
}

func NewCookieStore(secret string, lifetime time.Duration, secure bool) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session: cookie store needs a secret")
	}
	codec := securecookie.New([]byte(secret), nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(lifetime / time.Second))
	return &CookieStore{codec: codec, lifetime: lifetime, secure: secure}, nil
}

// Handler is a no-op; cookies are read and written in place.
func (s *CookieStore) Handler(next http.Handler) http.Handler {
	return next
}

func (s *CookieStore) Put(w http.ResponseWriter, r *http.Request, key string, value domain.SessionUser) error {
	values := s.load(r)
	values[key] = value

	encoded, err := s.codec.Encode(CookieName, values)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(encoded, int(s.lifetime/time.Second)))
	return nil
}

func (s *CookieStore) Get(r *http.Request, key string) (domain.SessionUser, bool, error) {
	v, ok := s.load(r)[key]
	return v, ok, nil
}

func (s *CookieStore) Destroy(w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, s.cookie("", -1))
	return nil
}

func (s *CookieStore) load(r *http.Request) cookieValues {
	values := cookieValues{}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return values
	}
	if err := s.codec.Decode(CookieName, c.Value, &values); err != nil {
		return cookieValues{}
	}
	return values
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
