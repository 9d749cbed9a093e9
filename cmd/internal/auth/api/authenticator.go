package authapi

import (
	"net/http"
	"time"

	"folio/cmd/identity"
)

// Authenticate resolves the access-token cookie into a request identity.
//
// It must run before any authorization decision, and it never writes a
// response: requests without a usable credential simply continue as
// anonymous, because many catalog endpoints are intentionally open and
// rejection belongs to downstream authorization checks.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, ok := cookieValue(r, h.cfg.AccessCookieName)
		if !ok {
			// Missing or blank cookie: no validation attempt.
			next.ServeHTTP(w, r)
			return
		}

		u, err := h.sessions.ResolveIdentity(r.Context(), time.Now().UTC(), access)
		if err != nil {
			// Invalid token degrades to anonymous; the cause was logged
			// inside the session service.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), u)))
	})
}
