package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the database is configured and
	// reachable.
	ReadinessRequireDB bool

	// DevUser/DevPassword seed one account in memory-store mode so local
	// logins work without a database. Ignored when a database is configured.
	DevUser     string
	DevPassword string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("FOLIO_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel: EnvString("FOLIO_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("FOLIO_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("FOLIO_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("FOLIO_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("FOLIO_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("FOLIO_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("FOLIO_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("FOLIO_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("FOLIO_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("FOLIO_READINESS_REQUIRE_DB", false),

		DevUser:     EnvString("FOLIO_DEV_USER", ""),
		DevPassword: EnvString("FOLIO_DEV_PASSWORD", ""),
	}
}
