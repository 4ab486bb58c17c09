package platform

import (
	"testing"

	"github.com/kapu/ayovirals-go/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want domain.Platform
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", domain.PlatformYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", domain.PlatformYouTube},
		{"HTTPS://WWW.YOUTUBE.COM/shorts/abc", domain.PlatformYouTube},
		{"https://www.tiktok.com/@user/video/123", domain.PlatformTikTok},
		{"https://www.instagram.com/reel/xyz/", domain.PlatformInstagram},
		{"https://twitter.com/user/status/1", domain.PlatformTwitter},
		{"https://x.com/user/status/1", domain.PlatformTwitter},
		{"https://www.facebook.com/watch/?v=1", domain.PlatformFacebook},
		{"https://vimeo.com/123", domain.PlatformUnknown},
		{"not-a-valid-url", domain.PlatformUnknown},
		{"", domain.PlatformUnknown},
		{"\x00\xff garbage", domain.PlatformUnknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.url); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.url, got, tt.want)
		}
	}
}

func TestDetectPriorityOrder(t *testing.T) {
	// youtube is checked before tiktok.
	got := Detect("https://youtube.com/redirect?q=https://tiktok.com/x")
	if got != domain.PlatformYouTube {
		t.Fatalf("expected youtube to win, got %s", got)
	}
}
