// Package transcribe turns acquired audio into text.
package transcribe

import (
	"context"
	"fmt"

	"github.com/kapu/ayovirals-go/internal/config"
	"go.uber.org/zap"
)

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
	Name() string
}

// Provider names accepted by New.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// MockText is what the mock provider returns for every file.
const MockText = "This is a mock transcription. Video content analysis coming soon with local Whisper integration."

// Mock returns MockText without reading the file.
type Mock struct{}

func (Mock) Name() string {
	return ProviderMock
}

func (Mock) Transcribe(context.Context, string) (string, error) {
	return MockText, nil
}

// New builds the provider selected in cfg. ProviderNone yields a nil
// Transcriber, which the Service treats as always unavailable.
func New(ctx context.Context, cfg config.TranscribeConfig, logger *zap.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case "", ProviderMock:
		return Mock{}, nil
	case ProviderOpenAI:
		t, err := NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		return t, nil
	case ProviderGemini:
		t, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		return t, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", cfg.Provider)
	}
}
