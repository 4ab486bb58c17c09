package transcribe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// OpenAI transcribes through the Whisper audio endpoint.
type OpenAI struct {
	client *openai.Client
	model  openai.AudioModel
	logger *zap.Logger
}

func NewOpenAI(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	audioModel := openai.AudioModelWhisper1
	if model != "" {
		audioModel = openai.AudioModel(model)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAI{
		client: &client,
		model:  audioModel,
		logger: logger,
	}, nil
}

func (o *OpenAI) Name() string {
	return ProviderOpenAI
}

func (o *OpenAI) Transcribe(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", apperrors.NewServiceError("failed to open audio file", ProviderOpenAI, "open", err)
	}
	defer file.Close()

	o.logger.Debug("Transcribing with OpenAI",
		zap.String("model", string(o.model)),
		zap.String("file", filePath))

	resp, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  file,
		Model: o.model,
	})
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", apperrors.NewAPIError("OpenAI transcription failed", status, map[string]any{
			"provider": ProviderOpenAI,
			"model":    string(o.model),
		}).WithCause(err)
	}

	return strings.TrimSpace(resp.Text), nil
}
