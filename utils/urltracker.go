package utils

import (
	"net/url"
	"strings"
)

// URLTracker keeps URLs unique by normalized key, remembering first-seen order.
// It is not safe for concurrent use; the scraper drives it from one goroutine.
type URLTracker struct {
	seen  map[string]struct{}
	order []TrackedURL
}

// TrackedURL is one accepted entry: its normalized key and the URL as first seen
type TrackedURL struct {
	Key string
	URL string
}

// NewURLTracker creates a new tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{seen: make(map[string]struct{})}
}

// Add returns true if the URL's key is new, false if it is a duplicate or empty
func (t *URLTracker) Add(rawURL string) bool {
	key := NormalizeURLKey(rawURL)
	if key == "" {
		return false
	}
	if _, exists := t.seen[key]; exists {
		return false
	}
	t.seen[key] = struct{}{}
	t.order = append(t.order, TrackedURL{Key: key, URL: strings.TrimSpace(rawURL)})
	return true
}

// Count returns the number of tracked URLs
func (t *URLTracker) Count() int {
	return len(t.order)
}

// Entries returns the tracked URLs in first-seen order
func (t *URLTracker) Entries() []TrackedURL {
	out := make([]TrackedURL, len(t.order))
	copy(out, t.order)
	return out
}

// NormalizeURLKey lower-cases scheme and host, drops query and fragment and
// trims a trailing slash. Unparseable input falls back to the trimmed string.
func NormalizeURLKey(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(rawURL, "/")
	}
	path := u.EscapedPath()
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + strings.TrimRight(path, "/")
}
