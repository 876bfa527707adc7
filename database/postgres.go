package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"movie-recommendation-engine/config"
)

// PostgresService provides PostgreSQL database operations
type PostgresService struct {
	db  *sql.DB
	cfg *config.DatabaseConfig
}

// BuildConnectionString builds a lib/pq connection string from config
func BuildConnectionString(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode,
	)
}

// NewPostgresService opens a pooled PostgreSQL connection and verifies it
func NewPostgresService(cfg *config.DatabaseConfig) (*PostgresService, error) {
	db, err := sql.Open("postgres", BuildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresService{db: db, cfg: cfg}, nil
}

// DB returns the underlying connection pool
func (s *PostgresService) DB() *sql.DB {
	return s.db
}

// Close closes the connection pool
func (s *PostgresService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks database connectivity
func (s *PostgresService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Health checks database health with a trivial query
func (s *PostgresService) Health(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	return nil
}
