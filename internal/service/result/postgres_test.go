package result

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Runs only when AYOVIRALS_TEST_POSTGRES_DSN points at a disposable database.
func TestPostgresRepositoryRoundTrip(t *testing.T) {
	dsn := os.Getenv("AYOVIRALS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("AYOVIRALS_TEST_POSTGRES_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("schema error = %v", err)
		}
	}

	repo := NewPostgresRepository(db, zap.NewNop())
	rec := sampleRecord(uuid.NewString())
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	defer repo.Delete(ctx, rec.ID)

	got, err := repo.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	got.CreatedAt = got.CreatedAt.UTC()
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, rec)
	}

	if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
