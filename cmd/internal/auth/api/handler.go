// Package authapi exposes folio's authentication endpoints and the request
// authenticator that resolves cookie credentials into a request identity.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio/cmd/identity"
	"folio/cmd/internal/auth/session"
)

// Handler wires HTTP auth endpoints to the session service.
type Handler struct {
	log      *slog.Logger
	cfg      Config
	sessions *session.Service
	sessCfg  session.Config
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, sessCfg session.Config, sessions *session.Service) (*Handler, error) {
	if sessions == nil {
		return nil, errors.New("authapi: nil session service")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, sessions: sessions, sessCfg: sessCfg}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/refresh", h.handleRefresh)
	mux.HandleFunc("/auth/logout", h.handleLogout)
	mux.HandleFunc("/auth/status", h.handleStatus)
	mux.HandleFunc("/me", h.handleMe)
}

// ---- handlers ----

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	access, err := h.sessions.Login(ctx, now, username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrBadCredentials) {
			writeUnauthorized(w)
			return
		}
		h.log.Error("auth.login.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	// Login minted the access token; rotation is the shared primitive that
	// also runs on every refresh.
	refresh, refreshExp, err := h.sessions.RotateRefreshToken(ctx, now, username)
	if err != nil {
		h.log.Error("auth.login.rotate.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	u, err := h.sessions.ResolveIdentity(ctx, now, access)
	if err != nil {
		h.log.Error("auth.login.resolve.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.setSessionCookies(w, access, now.Add(h.sessCfg.AccessTokenTTL), refresh, refreshExp)
	writeJSON(w, http.StatusOK, loginResponse{User: toUserResponse(u)})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	presented, ok := cookieValue(r, h.cfg.RefreshCookieName)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	got, err := h.sessions.RefreshAccessToken(ctx, now, presented)
	if err != nil {
		if errors.Is(err, session.ErrRefreshTokenInvalid) {
			writeUnauthorized(w)
			return
		}
		h.log.Error("auth.refresh.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.setSessionCookies(w, got.AccessToken, now.Add(h.sessCfg.AccessTokenTTL), got.RefreshToken, got.RefreshExpiresAt)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Logout only clears the cookies. The stored refresh token dies on the
	// next rotation or by expiry; access tokens lapse on their own.
	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleStatus is a client-side convenience: it reports cookie presence and
// validates nothing.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	_, hasAccess := cookieValue(r, h.cfg.AccessCookieName)
	_, hasRefresh := cookieValue(r, h.cfg.RefreshCookieName)

	writeJSON(w, http.StatusOK, statusResponse{Authenticated: hasAccess && hasRefresh})
}

// handleMe returns the identity the request authenticator attached.
// It is the model downstream consumer: it never parses tokens itself.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	u, ok := identity.FromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: toUserResponse(u)})
}
