package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

func init() {
	gob.Register(domain.SessionUser{})
}

// ManagedStore keeps session data server side; the cookie only carries an
// opaque token.
type ManagedStore struct {
	sm *scs.SessionManager
}

// NewMemoryStore keeps sessions in process memory.
func NewMemoryStore(lifetime time.Duration, secure bool) *ManagedStore {
	return newManagedStore(memstore.New(), lifetime, secure)
}

// NewRedisStore keeps sessions in Redis under the "scs:session:" prefix.
func NewRedisStore(client *redis.Client, lifetime time.Duration, secure bool) *ManagedStore {
	return newManagedStore(goredisstore.New(client), lifetime, secure)
}

func newManagedStore(store scs.Store, lifetime time.Duration, secure bool) *ManagedStore {
	sm := scs.New()
	sm.Store = store
	sm.Lifetime = lifetime

	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &ManagedStore{sm: sm}
}

// Handler loads the session before next runs and commits it afterwards.
func (s *ManagedStore) Handler(next http.Handler) http.Handler {
	return s.sm.LoadAndSave(next)
}

func (s *ManagedStore) Put(_ http.ResponseWriter, r *http.Request, key string, value domain.SessionUser) error {
	// New token on login to prevent session fixation.
	if err := s.sm.RenewToken(r.Context()); err != nil {
		return err
	}
	s.sm.Put(r.Context(), key, value)
	return nil
}

func (s *ManagedStore) Get(r *http.Request, key string) (domain.SessionUser, bool, error) {
	v, ok := s.sm.Get(r.Context(), key).(domain.SessionUser)
	return v, ok, nil
}

func (s *ManagedStore) Destroy(_ http.ResponseWriter, r *http.Request) error {
	return s.sm.Destroy(r.Context())
}
