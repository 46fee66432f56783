package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"advancedstats/config"
)

// ConnString builds the pgx connection string. DATABASE_URL wins over
// the individual POSTGRES_* settings.
func ConnString(cfg *config.Config) (string, error) {
	if cfg.DatabaseURL != "" {
		connString, err := pq.ParseURL(cfg.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		return connString, nil
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB), nil
}

// target describes where a pool connects to, without credentials.
func target(c *pgxpool.Config) string {
	return fmt.Sprintf("%s:%d/%s", c.ConnConfig.Host, c.ConnConfig.Port, c.ConnConfig.Database)
}

func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	connString, err := ConnString(cfg)
	if err != nil {
		return nil, err
	}

	// Create a connection pool
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	log.Println("Connecting to database", target(poolConfig))
	if cfg.DBMaxConns > 0 {
		poolConfig.MaxConns = cfg.DBMaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("Successfully connected to the database")
	return pool, nil
}
