package gmaps

import (
	"context"
	"time"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// Page is what a single visit yields. The tab behind it is already closed.
type Page struct {
	URL  string // final URL after redirects
	HTML string
	Text string // rendered visible text
}

// PageOpener loads url in an isolated page and releases the page before
// returning, on success and on failure.
type PageOpener interface {
	Visit(ctx context.Context, url string) (*Page, error)
}

// ContactMiner walks a business website looking for contact identifiers:
// home page, then a contact/about page, then a social profile, stopping as
// soon as an email is known.
type ContactMiner struct {
	opener       PageOpener
	verifier     EmailVerifier
	socialSettle time.Duration
	logger       *utils.Logger
}

// NewContactMiner creates a miner. verifier may be nil to accept every email.
func NewContactMiner(opener PageOpener, verifier EmailVerifier, socialSettle time.Duration, logger *utils.Logger) *ContactMiner {
	return &ContactMiner{opener: opener, verifier: verifier, socialSettle: socialSettle, logger: logger}
}

// Mine returns whatever could be found for website. It never fails; an
// unusable website yields an empty bundle.
func (m *ContactMiner) Mine(ctx context.Context, website string) models.ContactBundle {
	bundle := models.NewContactBundle()

	home := NormalizeCandidate(website)
	if !isMineable(home) {
		m.logger.Debug("      skipping website %q", website)
		return bundle
	}

	page := m.visit(ctx, home, &bundle)
	if bundle.HasEmail() {
		return bundle
	}

	if page != nil {
		if link := FindContactLink(ParseAnchors(page.HTML, page.URL), page.URL); link != "" {
			m.visit(ctx, link, &bundle)
			if bundle.HasEmail() {
				return bundle
			}
		}
	}

	if profile := PreferredProfile(bundle.Socials); profile != "" {
		if err := utils.SleepContext(ctx, m.socialSettle); err != nil {
			return bundle
		}
		m.visit(ctx, profile, &bundle)
	}
	return bundle
}

// visit loads one page and folds its emails, phones and social links into
// bundle. Failures are logged and yield nil.
func (m *ContactMiner) visit(ctx context.Context, link string, bundle *models.ContactBundle) *Page {
	if !isMineable(link) {
		return nil
	}
	m.logger.Info("      [*] Scanning %s", link)

	page, err := m.opener.Visit(ctx, link)
	if err != nil {
		m.logger.Warn("      [!] Could not load %s: %v", link, err)
		return nil
	}
	if page.URL == "" {
		page.URL = link
	}
	bundle.Visited = append(bundle.Visited, link)

	for _, e := range ExtractEmails(page.HTML) {
		if m.verifier != nil && !m.verifier.Verify(ctx, e) {
			m.logger.Debug("      dropping %s: no MX", e)
			continue
		}
		bundle.Emails = appendUnique(bundle.Emails, e)
	}

	text := page.Text
	if text == "" {
		text = MarkupText(page.HTML)
	}
	for _, p := range ExtractPhones(text) {
		bundle.Phones = appendUnique(bundle.Phones, p)
	}

	ClassifySocials(ParseAnchors(page.HTML, page.URL), bundle)
	return page
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
