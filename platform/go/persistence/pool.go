package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultLeadMaxConns    = 4
	defaultLeadIdleTime    = 5 * time.Minute
	defaultPingTimeout     = 5 * time.Second
	defaultApplicationName = "fortworth1031-leads"
)

// PoolConfig sizes the pgxpool behind the postgres lead store. Zero fields take
// the lead store defaults: a small pool that drops idle connections quickly.
type PoolConfig struct {
	ConnString      string
	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"4"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT" envDefault:"5s"`
	ApplicationName string        `env:"DB_APPLICATION_NAME" envDefault:"fortworth1031-leads"`
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxConns <= 0 {
		c.MaxConns = defaultLeadMaxConns
	}
	if c.MaxConnIdleTime <= 0 {
		c.MaxConnIdleTime = defaultLeadIdleTime
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = defaultPingTimeout
	}
	if c.ApplicationName == "" {
		c.ApplicationName = defaultApplicationName
	}
	return c
}

// poolConfig parses the connection string and applies the lead store sizing.
// An application_name already present in the connection string is kept.
func (c PoolConfig) poolConfig() (*pgxpool.Config, error) {
	if c.ConnString == "" {
		return nil, errors.New("conn string is required")
	}
	c = c.withDefaults()

	parsed, err := pgxpool.ParseConfig(c.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	parsed.MaxConns = c.MaxConns
	parsed.MinConns = 0
	parsed.MaxConnIdleTime = c.MaxConnIdleTime
	if _, ok := parsed.ConnConfig.RuntimeParams["application_name"]; !ok {
		parsed.ConnConfig.RuntimeParams["application_name"] = c.ApplicationName
	}
	return parsed, nil
}

// NewPool builds a pgxpool.Pool and pings it within PingTimeout.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.poolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.withDefaults().PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// ClosePool shuts down the pool gracefully; safe to call with nil.
func ClosePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
