package models

// Social platform buckets, in output order
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
	PlatformWhatsApp  = "whatsapp"
	PlatformLinktree  = "linktree"
)

// SocialPlatforms lists every bucket a ContactBundle can fill
var SocialPlatforms = []string{
	PlatformFacebook,
	PlatformInstagram,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformYouTube,
	PlatformTikTok,
	PlatformWhatsApp,
	PlatformLinktree,
}

// ContactBundle holds what was mined from a business website and its
// fallback pages. Any part may be empty.
type ContactBundle struct {
	Emails  []string
	Phones  []string
	Socials map[string]string // platform -> first profile URL seen
	Visited []string          // pages actually navigated, in order
}

// NewContactBundle returns an empty bundle with an initialised social map
func NewContactBundle() ContactBundle {
	return ContactBundle{Socials: make(map[string]string)}
}

// HasEmail reports whether at least one email was found
func (b ContactBundle) HasEmail() bool {
	return len(b.Emails) > 0
}
