package domain

// Platform is the coarse hosting-service tag derived from a video URL.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformUnknown   Platform = "unknown"
)

func (p Platform) String() string {
	return string(p)
}
