package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"xpose-backend/internal/config"
)

var (
	errNoPool = errors.New("database pool is not initialized")

	quoteValue = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
)

// PostgresDB owns the pgx pool shared by every repository.
type PostgresDB struct {
	Pool *pgxpool.Pool
	cfg  config.DatabaseConfig
}

func NewPostgresDB(cfg config.DatabaseConfig) *PostgresDB {
	return &PostgresDB{cfg: cfg}
}

// dsn renders the keyword/value form so passwords need no URL escaping.
func dsn(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, quoteValue.Replace(cfg.Password), cfg.Database, sslMode)
}

func (db *PostgresDB) poolConfig() (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(dsn(db.cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if db.cfg.MaxConns > 0 {
		pc.MaxConns = int32(db.cfg.MaxConns)
	}
	if db.cfg.MinConns > 0 {
		pc.MinConns = int32(db.cfg.MinConns)
	}
	if db.cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = db.cfg.MaxConnLifetime
	}
	if db.cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = db.cfg.MaxConnIdleTime
	}
	if db.cfg.ConnectTimeout > 0 {
		pc.ConnConfig.ConnectTimeout = db.cfg.ConnectTimeout
	}
	return pc, nil
}

// Connect opens the pool, retrying with a doubling delay until MaxRetries
// attempts have failed or ctx is done.
func (db *PostgresDB) Connect(ctx context.Context) error {
	pc, err := db.poolConfig()
	if err != nil {
		return err
	}

	attempts := max(db.cfg.MaxRetries, 1)
	delay := db.cfg.RetryDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := open(ctx, pc)
		if err == nil {
			db.Pool = pool
			log.Info().
				Str("host", db.cfg.Host).
				Str("database", db.cfg.Database).
				Int("attempt", attempt).
				Msg("[DATABASE] Connected")
			return nil
		}

		lastErr = err
		if attempt == attempts {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("[DATABASE] Connect failed")
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("connect cancelled: %w", ctx.Err())
		}
		delay *= 2
	}

	return fmt.Errorf("connect after %d attempts: %w", attempts, lastErr)
}

func open(ctx context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// HealthCheck pings with a five second budget.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return errNoPool
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	db.Pool.Close()
	db.Pool = nil
}
