package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kapu/ayovirals-go/internal/config"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

// DSN renders a lib/pq connection string.
func DSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
}

func NewPostgresService(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresService, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &PostgresService{
		db:     db,
		logger: logger,
	}, nil
}

func (ps *PostgresService) GetDB() *sql.DB {
	return ps.db
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PostgresService) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// ApplySchema runs statements in a single transaction.
func (ps *PostgresService) ApplySchema(ctx context.Context, statements []string) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema tx: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	ps.logger.Info("Schema applied", zap.Int("statements", len(statements)))
	return nil
}
