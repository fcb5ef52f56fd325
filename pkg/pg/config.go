package pg

import "time"

// Config describes the connection pool and the migration bookkeeping.
type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL"`                            // Postgres URL, required when the postgres store is selected
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"4"`       // Pool size upper bound
	MinConns          int32         `env:"PG_MIN_CONNS" envDefault:"1"`            // Connections kept warm
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`  // Pool health check cadence
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"` // Idle connections older than this are closed
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`  // Connections older than this are recycled

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`

	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"otpvault_migrations"`
}
