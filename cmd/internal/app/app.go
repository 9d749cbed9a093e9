// Package app wires the folio server runtime: config, logging, database,
// HTTP routes and the auth subsystem.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"folio/cmd/identity"
	authapi "folio/cmd/internal/auth/api"
	"folio/cmd/internal/auth/session"
	"folio/cmd/internal/metrics"
	"folio/cmd/security/password"
)

// App is the folio server runtime.
type App struct {
	cfg Config
	log Logger

	pool      *pgxpool.Pool
	dbEnabled bool

	auth *authapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	store, pool, dbEnabled, err := newCredentialStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	sessions, err := session.NewService(sessCfg, store, log)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	auth, err := authapi.NewHandler(log, authapi.LoadConfigFromEnv(), sessCfg, sessions)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	metrics.Register()

	return &App{
		cfg:       cfg,
		log:       log,
		pool:      pool,
		dbEnabled: dbEnabled,
		auth:      auth,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.pool, a.dbEnabled, a.auth)

	handler := a.auth.Authenticate(mux)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.pool != nil {
		a.pool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newCredentialStore decides between Postgres-backed persistence and the
// in-memory dev store.
func newCredentialStore(ctx context.Context, cfg Config, log Logger) (identity.Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		store := identity.NewMemoryStore()
		if err := seedDevUser(store, cfg, log); err != nil {
			return nil, nil, false, err
		}
		return store, nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, err
	}

	if err := RunMigrations(ctx, cfg); err != nil {
		pool.Close()
		return nil, nil, false, err
	}

	store, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, err
	}

	log.Info("db.enabled.postgres_store")
	return store, pool, true, nil
}

// seedDevUser adds one account to the memory store so local logins work.
func seedDevUser(store *identity.MemoryStore, cfg Config, log Logger) error {
	if cfg.DevUser == "" || cfg.DevPassword == "" {
		return nil
	}

	hash, err := password.HashWithCost(cfg.DevPassword, bcrypt.MinCost)
	if err != nil {
		return err
	}

	u := store.Add(identity.User{
		Username:     cfg.DevUser,
		PasswordHash: hash,
		DisplayName:  cfg.DevUser,
		Role:         identity.RoleAdmin,
	})
	log.Info("db.dev_user.seeded", "username", u.Username)
	return nil
}
