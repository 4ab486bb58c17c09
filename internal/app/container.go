package app

import (
	"context"
	"fmt"

	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/server"
	"github.com/kapu/ayovirals-go/internal/service/cache"
	"github.com/kapu/ayovirals-go/internal/service/database"
	"github.com/kapu/ayovirals-go/internal/service/hook"
	"github.com/kapu/ayovirals-go/internal/service/keyword"
	"github.com/kapu/ayovirals-go/internal/service/media"
	"github.com/kapu/ayovirals-go/internal/service/pipeline"
	"github.com/kapu/ayovirals-go/internal/service/result"
	"github.com/kapu/ayovirals-go/internal/service/summary"
	"github.com/kapu/ayovirals-go/internal/service/transcribe"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Orchestrator *pipeline.Orchestrator
	Store        result.Store

	serverDeps server.Deps
	closers    []func()
}

// NewServer instantiates the HTTP server using the pre-built dependency graph.
func (c *Container) NewServer() (*server.Server, error) {
	if c == nil || c.serverDeps.Processor == nil {
		return nil, fmt.Errorf("server dependencies not initialized")
	}
	return server.New(c.Config.Server.Addr(), c.serverDeps, c.Logger), nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all services. Postgres and Redis are optional at runtime: when
// they cannot be reached the server still starts, without persistence or
// caching respectively.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	// Reference data
	personas, err := domain.LoadPersonaCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}
	patterns, err := domain.LoadViralPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to load viral patterns: %w", err)
	}
	logger.Info("Reference data loaded",
		zap.Int("personas", len(personas.Personas)),
		zap.String("default_persona", personas.Default().ID))

	// Persistence
	store, cacheSvc := c.buildStore(ctx)
	c.Store = store

	// Media and transcription
	acquirer := media.NewAcquirer(media.AcquirerOptions{
		Enabled:    cfg.Media.Enabled,
		BinaryPath: cfg.Media.YtDlpPath,
		TempDir:    cfg.Media.TempDir,
		KeepFiles:  cfg.Media.KeepOnDisk,
	}, media.NewExecRunner(), logger)
	if availErr := acquirer.Available(); availErr != nil {
		logger.Warn("Media acquisition unavailable, placeholder content will be used", zap.Error(availErr))
	}

	transcriber, err := transcribe.New(ctx, cfg.Transcribe, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}
	transcribeSvc := transcribe.NewService(transcriber, logger)

	var enricher pipeline.MetadataEnricher
	if cfg.Metadata.Enrichment {
		enricher = c.buildEnricher(ctx)
	}

	// Generators
	limits := constants.GenerationLimits
	extractor := keyword.New(cfg.Keywords.Strategy, limits.MaxContentKeywords, logger)

	orchestrator := pipeline.NewOrchestrator(pipeline.Deps{
		Personas:         personas,
		Acquirer:         acquirer,
		Transcriber:      transcribeSvc,
		Enricher:         enricher,
		Keywords:         extractor,
		Hooks:            hook.NewGenerator(personas, nil, limits.MaxHooks),
		Summaries:        summary.NewGenerator(limits.MinSummaryInput, limits.ShortSummaryLength, limits.MaxSummaryLength),
		Store:            store,
		BatchConcurrency: cfg.Pipeline.BatchConcurrency,
	}, logger)
	c.Orchestrator = orchestrator

	c.serverDeps = server.Deps{
		Processor: orchestrator,
		Personas:  personas,
		Patterns:  patterns,
		Store:     store,
		Checks:    healthChecks(cacheSvc, extractor, transcribeSvc, acquirer),
	}

	return c, nil
}

// buildStore never fails; unreachable backends are logged and skipped.
func (c *Container) buildStore(ctx context.Context) (result.Store, *cache.CacheService) {
	cfg, logger := c.Config, c.Logger

	var store result.Store
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		postgresSvc, err := database.NewPostgresService(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Warn("PostgreSQL unavailable, results will not be persisted", zap.Error(err))
			break
		}
		c.closers = append(c.closers, func() {
			_ = postgresSvc.Close()
		})
		if err := postgresSvc.ApplySchema(ctx, result.Schema); err != nil {
			logger.Warn("Failed to apply results schema", zap.Error(err))
		}
		store = result.NewPostgresRepository(postgresSvc.GetDB(), logger)
	case config.StoreDriverMemory:
		store = result.NewMemoryStore()
	}

	if !cfg.Redis.Enabled {
		return store, nil
	}

	cacheSvc, err := cache.NewCacheService(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, result cache disabled", zap.Error(err))
		return store, nil
	}
	c.closers = append(c.closers, func() {
		_ = cacheSvc.Close()
	})

	if store != nil {
		store = result.NewCachedStore(store, cacheSvc, cfg.Redis.ResultTTL, logger)
	}
	logger.Info("Result store ready", zap.Bool("cached", store != nil))
	return store, cacheSvc
}

func (c *Container) buildEnricher(ctx context.Context) *media.Enricher {
	var ytSource media.MetadataSource
	if key := c.Config.Metadata.YouTubeAPIKey; key != "" {
		yt, err := media.NewYouTubeMetadata(ctx, key)
		if err != nil {
			c.Logger.Warn("YouTube metadata disabled", zap.Error(err))
		} else {
			ytSource = yt
		}
	}
	return media.NewEnricher(ytSource, media.NewPageMetadata(nil), c.Logger)
}
