package result

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kapu/ayovirals-go/internal/domain"
	"go.uber.org/zap"
)

func sampleRecord(id string) *domain.VideoRecord {
	return &domain.VideoRecord{
		ID:        id,
		URL:       "https://youtube.com/watch?v=abc",
		Platform:  domain.PlatformYouTube,
		Persona:   "nyc-drama",
		Summary:   "summary",
		Hooks:     []string{"h1", "h2"},
		Keywords:  []string{"#nyc", "#rent"},
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryStoreSaveAndFind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	rec := sampleRecord("a")

	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, rec); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}

	rec.Hooks[0] = "mutated"
	got, err := store.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Hooks[0] != "h1" {
		t.Fatal("stored record must not alias caller slices")
	}

	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakeCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	gets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	f.gets++
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

type countingStore struct {
	*MemoryStore
	finds int
}

func (c *countingStore) FindByID(ctx context.Context, id string) (*domain.VideoRecord, error) {
	c.finds++
	return c.MemoryStore.FindByID(ctx, id)
}

func TestCachedStoreReadThrough(t *testing.T) {
	backing := &countingStore{MemoryStore: NewMemoryStore()}
	cache := newFakeCache()
	store := NewCachedStore(backing, cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	rec := sampleRecord("b")
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := cache.data[CacheKey("b")]; !ok {
		t.Fatal("expected write-through on Save")
	}

	got, err := store.FindByID(ctx, "b")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("cached record mismatch: %+v", got)
	}
	if backing.finds != 0 {
		t.Fatalf("expected cache hit, backing store queried %d times", backing.finds)
	}
	if store.Name() != "memory+redis" {
		t.Fatalf("unexpected name %q", store.Name())
	}
}

func TestCachedStoreFallsThroughOnCacheError(t *testing.T) {
	backing := &countingStore{MemoryStore: NewMemoryStore()}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	store := NewCachedStore(backing, cache, 0, zap.NewNop())
	ctx := context.Background()

	if err := store.Save(ctx, sampleRecord("c")); err != nil {
		t.Fatalf("Save() must ignore cache errors, got %v", err)
	}
	if _, err := store.FindByID(ctx, "c"); err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if backing.finds != 1 {
		t.Fatalf("expected backing store lookup, got %d", backing.finds)
	}
	if _, err := store.FindByID(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
