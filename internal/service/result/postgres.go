package result

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kapu/ayovirals-go/internal/domain"
	"go.uber.org/zap"
)

// Schema creates the results table and its lookup index.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS video_results (
		id          TEXT PRIMARY KEY,
		url         TEXT NOT NULL,
		platform    TEXT NOT NULL,
		persona     TEXT NOT NULL,
		summary     TEXT NOT NULL,
		hooks       JSONB NOT NULL DEFAULT '[]'::jsonb,
		keywords    JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_video_results_created_at ON video_results (created_at DESC)`,
}

// PostgresRepository stores records in the video_results table.
type PostgresRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresRepository(db *sql.DB, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) Name() string {
	return "postgres"
}

func (r *PostgresRepository) Save(ctx context.Context, record *domain.VideoRecord) error {
	hooks, err := json.Marshal(record.Hooks)
	if err != nil {
		return fmt.Errorf("failed to encode hooks: %w", err)
	}
	keywords, err := json.Marshal(record.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	query := `
		INSERT INTO video_results (id, url, platform, persona, summary, hooks, keywords, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.URL,
		string(record.Platform),
		record.Persona,
		record.Summary,
		hooks,
		keywords,
		record.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert video result: %w", err)
	}

	r.logger.Debug("Video result stored", zap.String("id", record.ID))
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.VideoRecord, error) {
	query := `
		SELECT id, url, platform, persona, summary, hooks, keywords, created_at
		FROM video_results
		WHERE id = $1
	`

	var (
		record   domain.VideoRecord
		platform string
		hooks    []byte
		keywords []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.URL,
		&platform,
		&record.Persona,
		&record.Summary,
		&hooks,
		&keywords,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query video result: %w", err)
	}

	record.Platform = domain.Platform(platform)
	if err := json.Unmarshal(hooks, &record.Hooks); err != nil {
		return nil, fmt.Errorf("failed to decode hooks: %w", err)
	}
	if err := json.Unmarshal(keywords, &record.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return &record, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Delete removes a record. Only the store smoke check uses it.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM video_results WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete video result: %w", err)
	}
	return nil
}
