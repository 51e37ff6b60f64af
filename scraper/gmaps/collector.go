package gmaps

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// ErrNoListings means the feed never rendered a single listing
var ErrNoListings = eris.New("results feed yielded no listings")

// DefaultStableRounds is how many consecutive no-growth rounds end collection
const DefaultStableRounds = 5

// Feed is the results list as seen by the collector
type Feed interface {
	// VisibleListings returns the hrefs of all listing anchors rendered now
	VisibleListings(ctx context.Context) ([]string, error)
	// Advance scrolls for more results. scrolledFeed is false when the page
	// itself was scrolled because no feed container exists.
	Advance(ctx context.Context) (scrolledFeed bool, err error)
}

// CollectorState is the accumulated result of pagination so far. It is passed
// into Collect so callers and tests can inspect or seed it.
type CollectorState struct {
	Seen         *utils.URLTracker
	StableRounds int // consecutive rounds without growth
	Rounds       int
}

// NewCollectorState returns an empty state
func NewCollectorState() *CollectorState {
	return &CollectorState{Seen: utils.NewURLTracker()}
}

// Merge adds hrefs in order, skipping duplicates by normalized key, and
// updates the stable-round counter. It returns how many were new.
func (s *CollectorState) Merge(hrefs []string) int {
	added := 0
	for _, h := range hrefs {
		if s.Seen.Add(h) {
			added++
		}
	}
	s.Rounds++
	if added == 0 {
		s.StableRounds++
	} else {
		s.StableRounds = 0
	}
	return added
}

// Refs returns up to limit ListingRefs in discovery order
func (s *CollectorState) Refs(limit int) []models.ListingRef {
	entries := s.Seen.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	refs := make([]models.ListingRef, len(entries))
	for i, e := range entries {
		refs[i] = models.ListingRef{Key: e.Key, URL: e.URL, Order: i}
	}
	return refs
}

// ResultCollector paginates the feed by scrolling until enough unique listings
// are gathered or the feed stops growing.
type ResultCollector struct {
	feed         Feed
	settle       time.Duration
	stableRounds int
	logger       *utils.Logger
}

// NewResultCollector creates a collector. stableRounds <= 0 uses the default.
func NewResultCollector(feed Feed, settle time.Duration, stableRounds int, logger *utils.Logger) *ResultCollector {
	if stableRounds <= 0 {
		stableRounds = DefaultStableRounds
	}
	return &ResultCollector{feed: feed, settle: settle, stableRounds: stableRounds, logger: logger}
}

// Collect returns up to target unique ListingRefs in discovery order
func (c *ResultCollector) Collect(ctx context.Context, target int, state *CollectorState) ([]models.ListingRef, error) {
	if state == nil {
		state = NewCollectorState()
	}

	for {
		hrefs, err := c.feed.VisibleListings(ctx)
		if err != nil {
			c.logger.Warn("   [!] Error reading listings: %v", err)
		}
		if added := state.Merge(hrefs); added > 0 {
			c.logger.Info("   [>] Found %d listings so far...", state.Seen.Count())
		}

		if state.Seen.Count() >= target {
			break
		}
		if state.StableRounds >= c.stableRounds {
			c.logger.Info("   [+] Feed stopped growing after %d rounds", state.Rounds)
			break
		}

		scrolledFeed, err := c.feed.Advance(ctx)
		if err != nil {
			c.logger.Warn("   [!] Scroll error: %v", err)
		} else if !scrolledFeed {
			c.logger.Debug("   no feed container, scrolled the page")
		}

		if err := utils.SleepContext(ctx, c.settle); err != nil {
			return nil, eris.Wrap(err, "collection interrupted")
		}
	}

	if state.Seen.Count() == 0 {
		return nil, ErrNoListings
	}

	refs := state.Refs(target)
	c.logger.Info("[+] Collected %d unique listings", len(refs))
	return refs, nil
}
