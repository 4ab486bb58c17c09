package transcribe

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	geminiPrompt       = "Transcribe the spoken content of this audio verbatim. Return only the transcript text."
)

// Gemini sends the audio inline and asks the model for a verbatim transcript.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model, logger: logger}, nil
}

func (g *Gemini) Name() string {
	return ProviderGemini
}

func (g *Gemini) Transcribe(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", apperrors.NewServiceError("failed to read audio file", ProviderGemini, "read", err)
	}

	g.logger.Debug("Transcribing with Gemini",
		zap.String("model", g.model),
		zap.Int("bytes", len(data)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: geminiPrompt},
				{InlineData: &genai.Blob{Data: data, MIMEType: audioMIMEType(filePath)}},
			},
		},
	}, nil)
	if err != nil {
		return "", apperrors.NewAPIError("Gemini transcription failed", http.StatusBadGateway, map[string]any{
			"provider": ProviderGemini,
			"model":    g.model,
		}).WithCause(err)
	}

	return extractText(resp), nil
}

func audioMIMEType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); strings.HasPrefix(t, "audio/") {
		return t
	}
	return "audio/wav"
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.TrimSpace(strings.Join(texts, ""))
}
