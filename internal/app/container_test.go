package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/internal/domain"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Host: "127.0.0.1", Port: 8001},
		Store:      config.StoreConfig{Driver: config.StoreDriverMemory},
		Media:      config.MediaConfig{Enabled: false, YtDlpPath: "yt-dlp"},
		Transcribe: config.TranscribeConfig{Provider: "mock"},
		Keywords:   config.KeywordConfig{Strategy: "heuristic"},
		Pipeline:   config.PipelineConfig{BatchConcurrency: 2},
		Logging:    config.LoggingConfig{Level: "info"},
	}
}

func TestBuildWiresMemoryStore(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer container.Close()

	res := container.Orchestrator.Process(context.Background(), domain.ProcessingRequest{
		VideoURL: "https://www.tiktok.com/@a/video/1",
		Persona:  "fitness-guru",
	})
	if res.Platform != domain.PlatformTikTok {
		t.Fatalf("unexpected platform %s", res.Platform)
	}

	stored, err := container.Store.FindByID(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("expected persisted record, got %v", err)
	}
	if stored.URL != "https://www.tiktok.com/@a/video/1" {
		t.Fatalf("unexpected stored url %q", stored.URL)
	}

	srv, err := container.NewServer()
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/videos/"+res.ID, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), res.ID) {
		t.Fatalf("lookup through server failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestBuildWithoutStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Driver = config.StoreDriverNone

	container, err := Build(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer container.Close()

	if container.Store != nil {
		t.Fatal("expected no store")
	}
}

func TestBuildRejectsNilInputs(t *testing.T) {
	if _, err := Build(context.Background(), nil, zap.NewNop()); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := Build(context.Background(), testConfig(), nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}
