// Package platform classifies video URLs by hosting service.
package platform

import (
	"strings"

	"github.com/kapu/ayovirals-go/internal/domain"
)

type rule struct {
	platform domain.Platform
	needles  []string
}

// Checked in order; first hit wins.
var rules = []rule{
	{platform: domain.PlatformYouTube, needles: []string{"youtube.com", "youtu.be"}},
	{platform: domain.PlatformTikTok, needles: []string{"tiktok.com"}},
	{platform: domain.PlatformInstagram, needles: []string{"instagram.com"}},
	{platform: domain.PlatformTwitter, needles: []string{"twitter.com", "x.com"}},
	{platform: domain.PlatformFacebook, needles: []string{"facebook.com"}},
}

// Detect returns the platform tag for rawURL. It never fails; anything that
// matches no rule, including empty input, is PlatformUnknown.
func Detect(rawURL string) domain.Platform {
	lowered := strings.ToLower(rawURL)
	for _, r := range rules {
		for _, needle := range r.needles {
			if strings.Contains(lowered, needle) {
				return r.platform
			}
		}
	}
	return domain.PlatformUnknown
}
