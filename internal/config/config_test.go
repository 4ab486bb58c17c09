package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TRANSCRIBE_PROVIDER", "")
	t.Setenv("KEYWORD_STRATEGY", "")
	t.Setenv("RESULT_CACHE_TTL_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8001 {
		t.Errorf("default port = %d, want 8001", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Errorf("default store driver = %q", cfg.Store.Driver)
	}
	if cfg.Transcribe.Provider != "mock" {
		t.Errorf("default transcribe provider = %q", cfg.Transcribe.Provider)
	}
	if cfg.Redis.ResultTTL != time.Hour {
		t.Errorf("default result ttl = %s", cfg.Redis.ResultTTL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("KEYWORD_STRATEGY", "heuristic")
	t.Setenv("TRANSCRIBE_PROVIDER", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("store driver = %q", cfg.Store.Driver)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected cache enabled")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:     ServerConfig{Host: "0.0.0.0", Port: 8001},
			Store:      StoreConfig{Driver: StoreDriverMemory},
			Media:      MediaConfig{Enabled: true, YtDlpPath: "yt-dlp"},
			Transcribe: TranscribeConfig{Provider: "mock"},
			Keywords:   KeywordConfig{Strategy: "auto"},
			Pipeline:   PipelineConfig{BatchConcurrency: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: true},
		{name: "openai without key", mutate: func(c *Config) { c.Transcribe.Provider = "openai" }, wantErr: true},
		{name: "gemini with key", mutate: func(c *Config) {
			c.Transcribe.Provider = "gemini"
			c.Transcribe.GeminiAPIKey = "key"
		}},
		{name: "unknown strategy", mutate: func(c *Config) { c.Keywords.Strategy = "spacy" }, wantErr: true},
		{name: "media without binary", mutate: func(c *Config) { c.Media.YtDlpPath = "" }, wantErr: true},
		{name: "zero batch concurrency", mutate: func(c *Config) { c.Pipeline.BatchConcurrency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
