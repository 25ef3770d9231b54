package ports

import (
	"net/http"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// SessionStore keeps per-client session values. Get reports found=false for
// a missing key; that is not an error.
type SessionStore interface {
	// Handler wraps next with whatever load/save work the store needs per
	// request.
	Handler(next http.Handler) http.Handler
	Put(w http.ResponseWriter, r *http.Request, key string, value domain.SessionUser) error
	Get(r *http.Request, key string) (domain.SessionUser, bool, error)
	Destroy(w http.ResponseWriter, r *http.Request) error
}
