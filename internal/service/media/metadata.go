package media

import (
	"context"
	"strings"

	"github.com/kapu/ayovirals-go/internal/domain"
	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"go.uber.org/zap"
)

// Metadata is descriptive text about a video gathered without downloading it.
type Metadata struct {
	Title       string
	Description string
	Source      string
}

// Text joins the non-empty fields.
func (m *Metadata) Text() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{m.Title, m.Description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ". ")
}

// MetadataSource fetches Metadata for a URL.
type MetadataSource interface {
	Fetch(ctx context.Context, url string) (*Metadata, error)
	Name() string
}

// Enricher routes YouTube URLs to the Data API when configured and everything
// else to the page scraper.
type Enricher struct {
	youtube MetadataSource
	page    MetadataSource
	logger  *zap.Logger
}

// NewEnricher accepts nil sources; a nil Enricher is valid and returns "".
func NewEnricher(youtube, page MetadataSource, logger *zap.Logger) *Enricher {
	return &Enricher{youtube: youtube, page: page, logger: logger}
}

// Enrich returns metadata text for url, or "" when nothing could be fetched.
func (e *Enricher) Enrich(ctx context.Context, url string, platform domain.Platform) string {
	if e == nil {
		return ""
	}

	sources := make([]MetadataSource, 0, 2)
	if platform == domain.PlatformYouTube && e.youtube != nil {
		sources = append(sources, e.youtube)
	}
	if e.page != nil {
		sources = append(sources, e.page)
	}

	for _, src := range sources {
		meta, err := src.Fetch(ctx, url)
		if err != nil {
			e.logger.Warn("Metadata fetch failed",
				zap.String("source", src.Name()),
				zap.String("url", url),
				zap.String("code", apperrors.Code(err)),
				zap.Int("status", apperrors.StatusCode(err)),
				zap.Error(err))
			continue
		}
		if text := meta.Text(); text != "" {
			return text
		}
	}
	return ""
}
