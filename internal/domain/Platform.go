package domain

import "strings"

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// engagementTypesByPlatform lista os tipos de engajamento que cada plataforma aceita
var engagementTypesByPlatform = map[Platform][]string{
	PlatformTwitter:   {EngageLike, EngageComment, EngageReply, EngageShare, EngageFollow},
	PlatformInstagram: {EngageLike, EngageComment, EngageFollow},
	PlatformTikTok:    {EngageLike, EngageComment, EngageShare, EngageFollow},
	PlatformYouTube:   {EngageLike, EngageComment, EngageReply, EngageFollow},
}

func ParsePlatform(value string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(value)))
	_, ok := engagementTypesByPlatform[p]
	return p, ok
}

func (p Platform) IsSupported() bool {
	_, ok := engagementTypesByPlatform[p]
	return ok
}

// EngagementTypes retorna uma cópia dos tipos de engajamento permitidos para a plataforma
func (p Platform) EngagementTypes() []string {
	types := engagementTypesByPlatform[p]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

func SupportedPlatforms() []Platform {
	return []Platform{PlatformTwitter, PlatformInstagram, PlatformTikTok, PlatformYouTube}
}
