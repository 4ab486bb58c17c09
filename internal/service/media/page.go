package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/ayovirals-go/internal/constants"
)

const pageUserAgent = "Mozilla/5.0 (compatible; AyoViralsBot/1.0)"

// PageMetadata scrapes OpenGraph tags from the video page.
type PageMetadata struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewPageMetadata(httpClient *http.Client) *PageMetadata {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.MetadataTimeouts.Page}
	}
	return &PageMetadata{
		httpClient: httpClient,
		maxBytes:   constants.GenerationLimits.MaxPageBytes,
	}
}

func (p *PageMetadata) Name() string {
	return "page"
}

func (p *PageMetadata) Fetch(ctx context.Context, url string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", pageUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := &Metadata{Source: p.Name()}
	meta.Title = metaContent(doc, "og:title")
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	meta.Description = metaContent(doc, "og:description")
	if meta.Description == "" {
		meta.Description = metaContent(doc, "description")
	}
	return meta, nil
}

func metaContent(doc *goquery.Document, key string) string {
	var value string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prop, _ := s.Attr("property")
		name, _ := s.Attr("name")
		if prop != key && name != key {
			return true
		}
		content, _ := s.Attr("content")
		value = strings.TrimSpace(content)
		return value == ""
	})
	return value
}
