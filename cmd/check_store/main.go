package main

import (
	"context"
	"errors"
	"log"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/service/cache"
	"github.com/kapu/ayovirals-go/internal/service/database"
	"github.com/kapu/ayovirals-go/internal/service/result"
	"github.com/kapu/ayovirals-go/internal/util"
)

func main() {
	logger, _ := util.NewLogger("info", "")
	defer logger.Sync()

	log.Println("=== Result Store Integration Check ===")
	log.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	postgres, err := database.NewPostgresService(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()
	log.Println("✓ PostgreSQL connected")

	if err := postgres.ApplySchema(ctx, result.Schema); err != nil {
		log.Fatalf("❌ Failed to apply schema: %v", err)
	}
	log.Println("✓ Schema present")

	repo := result.NewPostgresRepository(postgres.GetDB(), logger)
	var store result.Store = repo

	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewCacheService(ctx, cfg.Redis, logger)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		defer cacheSvc.Close()
		store = result.NewCachedStore(repo, cacheSvc, cfg.Redis.ResultTTL, logger)
		log.Println("✓ Redis connected, using read-through store")
	}

	// Test 1: Save
	record := &domain.VideoRecord{
		ID:        uuid.NewString(),
		URL:       "https://www.youtube.com/watch?v=store-check",
		Platform:  domain.PlatformYouTube,
		Persona:   "viral-trends",
		Summary:   "Store integration check record.",
		Hooks:     []string{"This is going viral for a reason..."},
		Keywords:  []string{"#viral", "#check"},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := store.Save(ctx, record); err != nil {
		log.Fatalf("❌ Failed to save record: %v", err)
	}
	log.Printf("✓ Saved record %s via %s", record.ID, store.Name())

	defer func() {
		if err := repo.Delete(ctx, record.ID); err != nil {
			log.Printf("⚠ Failed to delete check record: %v", err)
		}
		if cacheSvc != nil {
			_ = cacheSvc.Del(ctx, result.CacheKey(record.ID))
		}
		log.Println("✓ Check record removed")
	}()

	// Test 2: Read back through the store
	found, err := store.FindByID(ctx, record.ID)
	if err != nil {
		log.Fatalf("❌ Failed to read record: %v", err)
	}
	found.CreatedAt = found.CreatedAt.UTC()
	if !reflect.DeepEqual(found, record) {
		log.Fatalf("❌ Round trip mismatch:\n got %+v\nwant %+v", found, record)
	}
	log.Println("✓ Round trip matches")

	// Test 3: Missing id
	if _, err := store.FindByID(ctx, uuid.NewString()); !errors.Is(err, result.ErrNotFound) {
		log.Fatalf("❌ Expected ErrNotFound, got %v", err)
	}
	log.Println("✓ Missing id reports not found")

	log.Println()
	log.Println("=== All checks passed ===")
}
