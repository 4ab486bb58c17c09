package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/service/database"
	"github.com/kapu/ayovirals-go/internal/service/result"
	"github.com/kapu/ayovirals-go/internal/util"
)

// CLI flags
var (
	dryRun     = flag.Bool("dry-run", false, "Print the plan without touching the database")
	importFile = flag.String("import", "", "JSON array of exported video records to insert")
	verbose    = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()

	log.Println("===========================")
	log.Println("Video results migration")
	log.Println("===========================")

	if *dryRun {
		log.Println("[DRY RUN MODE] No database changes will be made")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var records []*domain.VideoRecord
	if *importFile != "" {
		records, err = loadRecords(*importFile)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *importFile, err)
		}
		log.Printf("✓ Loaded %d records from %s", len(records), *importFile)
	}

	if *dryRun {
		for i, stmt := range result.Schema {
			log.Printf("  schema[%d]: %s", i, stmt)
		}
		log.Println("✓ Dry-run completed successfully")
		return
	}

	logLevel := "warn"
	if *verbose {
		logLevel = "debug"
	}
	logger, err := util.NewLogger(logLevel, "")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	postgres, err := database.NewPostgresService(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()

	if err := postgres.ApplySchema(ctx, result.Schema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	log.Println("✓ video_results schema applied")

	if len(records) == 0 {
		log.Println("✓ Migration completed successfully")
		return
	}

	repo := result.NewPostgresRepository(postgres.GetDB(), logger)
	inserted, skipped := 0, 0
	for _, rec := range records {
		_, err := repo.FindByID(ctx, rec.ID)
		switch {
		case err == nil:
			skipped++
			if *verbose {
				log.Printf("  → Skipped existing: %s", rec.ID)
			}
			continue
		case !errors.Is(err, result.ErrNotFound):
			log.Fatalf("Failed to check record %s: %v", rec.ID, err)
		}

		if err := repo.Save(ctx, rec); err != nil {
			log.Fatalf("Failed to insert record %s: %v", rec.ID, err)
		}
		inserted++
		if *verbose {
			log.Printf("  → Inserted: %s (%s, %s)", rec.ID, rec.Platform, rec.Persona)
		}
	}

	log.Printf("✓ Inserted %d records, skipped %d existing", inserted, skipped)
	log.Println("✓ Migration completed successfully")
}

func loadRecords(path string) ([]*domain.VideoRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []*domain.VideoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	for i, rec := range records {
		if rec == nil || rec.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now().UTC()
		}
		if rec.Hooks == nil {
			rec.Hooks = []string{}
		}
		if rec.Keywords == nil {
			rec.Keywords = []string{}
		}
	}
	return records, nil
}
