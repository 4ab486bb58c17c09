package app

import (
	"context"
	"fmt"

	"github.com/kapu/ayovirals-go/internal/server"
	"github.com/kapu/ayovirals-go/internal/service/cache"
	"github.com/kapu/ayovirals-go/internal/service/keyword"
	"github.com/kapu/ayovirals-go/internal/service/media"
	"github.com/kapu/ayovirals-go/internal/service/transcribe"
	"github.com/kapu/ayovirals-go/internal/util"
)

func healthChecks(cacheSvc *cache.CacheService, extractor keyword.Extractor, transcriber *transcribe.Service, acquirer *media.Acquirer) []server.HealthCheck {
	checks := []server.HealthCheck{
		{
			Name: "keywords",
			Probe: func(context.Context) (string, error) {
				return extractor.Name(), nil
			},
		},
		{
			Name: "transcriber",
			Probe: func(context.Context) (string, error) {
				state := transcriber.Breaker().GetState()
				detail := fmt.Sprintf("%s (circuit %s)", transcriber.Name(), state)
				if transcriber.Name() == transcribe.ProviderNone {
					return detail, fmt.Errorf("no transcription provider")
				}
				if state == util.CircuitStateOpen {
					return detail, fmt.Errorf("circuit open")
				}
				return detail, nil
			},
		},
		{
			Name: "ytdlp",
			Probe: func(context.Context) (string, error) {
				return "", acquirer.Available()
			},
		},
	}

	if cacheSvc != nil {
		checks = append(checks, server.HealthCheck{
			Name: "cache",
			Probe: func(ctx context.Context) (string, error) {
				if !cacheSvc.IsConnected(ctx) {
					return "redis", fmt.Errorf("ping failed")
				}
				return "redis", nil
			},
		})
	}
	return checks
}
