package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeMetadata reads the video snippet through the YouTube Data API v3.
// videos.list costs one quota unit per call.
type YouTubeMetadata struct {
	service *youtube.Service
}

func NewYouTubeMetadata(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeMetadata, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeMetadata{service: service}, nil
}

func (y *YouTubeMetadata) Name() string {
	return "youtube"
}

func (y *YouTubeMetadata) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	id := VideoID(rawURL)
	if id == "" {
		return nil, fmt.Errorf("no video id in %q", rawURL)
	}

	resp, err := y.service.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		status := http.StatusBadGateway
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			status = gErr.Code
		}
		return nil, apperrors.NewAPIError("YouTube videos.list failed", status, map[string]any{
			"video_id": id,
		}).WithCause(err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, apperrors.NewNotFoundError("YouTube video", id)
	}

	snippet := resp.Items[0].Snippet
	return &Metadata{
		Title:       snippet.Title,
		Description: snippet.Description,
		Source:      y.Name(),
	}, nil
}

// VideoID extracts the video id from watch, short-link, shorts and embed URLs.
func VideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch host {
	case "youtu.be":
		return segments[0]
	case "youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				return segments[1]
			}
		}
	}
	return ""
}
