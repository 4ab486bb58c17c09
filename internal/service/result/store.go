// Package result persists processed video results.
package result

import (
	"context"
	"errors"

	"github.com/kapu/ayovirals-go/internal/domain"
)

// ErrNotFound is returned by FindByID when no record exists for the id.
var ErrNotFound = errors.New("video result not found")

// Store is insert-only: records are keyed by a fresh id and never updated.
type Store interface {
	Save(ctx context.Context, record *domain.VideoRecord) error
	FindByID(ctx context.Context, id string) (*domain.VideoRecord, error)
	Ping(ctx context.Context) error
	Name() string
}
