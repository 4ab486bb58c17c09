package domain

import "time"

// ProcessingRequest is one inbound video processing call.
type ProcessingRequest struct {
	VideoURL string `json:"video_url"`
	Persona  string `json:"persona"`
}

// ProcessingResult is built once per request and never mutated afterwards.
type ProcessingResult struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Hooks     []string  `json:"hooks"`
	Keywords  []string  `json:"keywords"`
	Platform  Platform  `json:"platform"`
	Persona   string    `json:"persona"`
	CreatedAt time.Time `json:"created_at"`
}

// VideoRecord is the persisted shape of a result.
type VideoRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Platform  Platform  `json:"platform"`
	Persona   string    `json:"persona"`
	Summary   string    `json:"summary"`
	Hooks     []string  `json:"hooks"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVideoRecord copies a result into its persisted form.
func NewVideoRecord(url string, result *ProcessingResult) *VideoRecord {
	return &VideoRecord{
		ID:        result.ID,
		URL:       url,
		Platform:  result.Platform,
		Persona:   result.Persona,
		Summary:   result.Summary,
		Hooks:     append([]string(nil), result.Hooks...),
		Keywords:  append([]string(nil), result.Keywords...),
		CreatedAt: result.CreatedAt,
	}
}
