package gmaps

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"maps-lead-scraper/config"
	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// ErrSearchUnavailable means the search page rendered neither a results feed
// nor a place page.
var ErrSearchUnavailable = eris.New("search results unavailable")

// MapsScraper owns the browser for one run: a single Chrome process whose
// main tab serves the results feed and the listing pages.
type MapsScraper struct {
	cfg    *config.Config
	spec   models.SearchSpec
	proxy  string
	logger *utils.Logger

	browserCtx context.Context
	cancel     context.CancelFunc
}

// NewMapsScraper prepares a session. Nothing is launched until Start.
func NewMapsScraper(cfg *config.Config, spec models.SearchSpec, proxy string, logger *utils.Logger) *MapsScraper {
	return &MapsScraper{cfg: cfg, spec: spec, proxy: proxy, logger: logger}
}

// Start launches Chrome. The browser dies with ctx or on Close.
func (s *MapsScraper) Start(ctx context.Context) error {
	if s.proxy != "" {
		s.logger.Info("Using proxy %s", s.proxy)
	}
	s.browserCtx, s.cancel = utils.NewBrowser(ctx, utils.BrowserOptions{
		Headless:  s.cfg.Headless,
		UserAgent: s.cfg.UserAgent,
		Locale:    s.spec.BrowserLocale,
		Proxy:     s.proxy,
	}, s.logger)

	// first Run allocates the process and tab
	if err := chromedp.Run(s.browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(AcceptLanguage(s.spec))),
	); err != nil {
		s.cancel()
		return eris.Wrap(err, "failed to launch browser")
	}
	return nil
}

// Close shuts the browser down
func (s *MapsScraper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// AcceptLanguage returns the request header pinning pages to the search language
func AcceptLanguage(spec models.SearchSpec) map[string]interface{} {
	value := spec.Language
	if spec.BrowserLocale != "" {
		value = spec.BrowserLocale + "," + spec.Language + ";q=0.9"
	}
	if value == "" {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"Accept-Language": value}
}

// SearchURL builds the maps search URL for spec, pinned to its language
func SearchURL(spec models.SearchSpec) string {
	u := SearchURLBase + url.PathEscape(spec.Query)
	if spec.Language != "" {
		u += "?hl=" + url.QueryEscape(spec.Language)
	}
	return u
}

// OpenSearch loads the results page. It returns a non-nil direct hit when
// the provider jumped straight to a single place page.
func (s *MapsScraper) OpenSearch(ctx context.Context) (*models.ListingRef, error) {
	target := SearchURL(s.spec)
	s.logger.Info("[*] Searching: %s", s.spec.Query)
	s.logger.Debug("    %s", target)

	tabCtx, cancel := mergeCancel(s.browserCtx, ctx)
	defer cancel()

	err := utils.RetryWithBackoff(tabCtx, s.cfg.MaxRetries, func() error {
		navCtx, cancelNav := context.WithTimeout(tabCtx, s.cfg.SearchTimeout)
		defer cancelNav()
		if err := chromedp.Run(navCtx, chromedp.Navigate(target)); err != nil {
			return err
		}
		acceptCookies(navCtx, s.logger)
		return chromedp.Run(navCtx, chromedp.WaitVisible(FeedSelector+`, `+PlaceHeadlineSelector, chromedp.ByQuery))
	}, s.logger)
	if err != nil {
		return nil, eris.Wrapf(ErrSearchUnavailable, "%q: %v", s.spec.Query, err)
	}

	var hasFeed bool
	var current string
	if err := chromedp.Run(tabCtx,
		chromedp.Evaluate(`!!document.querySelector('`+FeedSelector+`')`, &hasFeed),
		chromedp.Location(&current),
	); err != nil {
		return nil, eris.Wrap(ErrSearchUnavailable, err.Error())
	}
	if !hasFeed && strings.Contains(current, "/maps/place/") {
		s.logger.Info("[+] Search resolved to a single place")
		return &models.ListingRef{Key: utils.NormalizeURLKey(current), URL: current}, nil
	}
	return nil, nil
}

// Collector returns a ResultCollector reading the main tab's feed
func (s *MapsScraper) Collector() *ResultCollector {
	return NewResultCollector(&browserFeed{tabCtx: s.browserCtx}, s.cfg.ScrollSettle, s.cfg.StableRounds, s.logger)
}

// Detail returns a DetailExtractor on the main tab
func (s *MapsScraper) Detail() *DetailExtractor {
	return NewDetailExtractor(s.browserCtx, DetailOptions{
		Language:           s.spec.Language,
		ListingTimeout:     s.cfg.ListingTimeout,
		InteractionSettle:  s.cfg.InteractionSettle,
		InteractionTimeout: s.cfg.InteractionTimeout,
		MaxRetries:         s.cfg.MaxRetries,
	}, s.logger)
}

// Contacts returns a ContactMiner that opens one extra tab per visited page
func (s *MapsScraper) Contacts() *ContactMiner {
	var verifier EmailVerifier
	if s.cfg.VerifyEmailMX {
		verifier = NewMXVerifier(5 * time.Second)
	}
	opener := NewTabOpener(s.browserCtx, s.cfg.WebsiteTimeout, s.cfg.InteractionSettle)
	return NewContactMiner(opener, verifier, s.cfg.SocialSettle, s.logger)
}
