package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// snapshotJS captures the detail panel in one round-trip. Text lookups stay in
// Go (fields.go) so the label table is applied in one place.
const snapshotJS = `
(() => {
	const txt = (el) => el ? (el.innerText || el.textContent || '').trim() : '';
	const node = (el) => ({
		itemId: el.getAttribute('data-item-id') || '',
		aria:   el.getAttribute('aria-label') || '',
		text:   txt(el).slice(0, 500),
		href:   el.getAttribute('href') || '',
	});
	const main = document.querySelector('div[role="main"]') || document;

	const items = Array.from(main.querySelectorAll('[data-item-id]')).slice(0, 200).map(node);
	const labelled = Array.from(main.querySelectorAll('button[aria-label], a[aria-label], div[role="button"][aria-label], div[aria-label][jsaction]'))
		.slice(0, 300).map(node);

	const h1 = main.querySelector('h1');
	const category = main.querySelector('button[jsaction*="category"]') || main.querySelector('span.DkEaL');

	const widget = main.querySelector('` + RatingWidgetSelector + `');
	const ratingSpans = widget
		? Array.from(widget.querySelectorAll('span[aria-hidden="true"]')).map(s => txt(s))
		: [];
	const reviewCtl = main.querySelector('button[jsaction*="reviewChart"], span[aria-label][role="img"] + span button');

	const hoursItem = main.querySelector('[data-item-id="oh"]');
	const hoursBox = main.querySelector('div.t39EBf, div[aria-label][jsaction*="openhours"]');
	const hoursAttr = (hoursBox && hoursBox.getAttribute('aria-label')) || (hoursItem && hoursItem.getAttribute('aria-label')) || '';
	const expand = main.querySelector('` + HoursExpandSelector + `');

	const desc = main.querySelector('div.PYvSYb, div[jsaction*="description"]');

	return {
		name: txt(h1),
		category: txt(category),
		items: items,
		labelled: labelled,
		ratingSpans: ratingSpans,
		ratingWidgetText: txt(widget),
		reviewCountText: txt(reviewCtl),
		hoursAttr: hoursAttr,
		hoursText: txt(hoursBox),
		hoursExpandable: !!expand,
		description: txt(desc),
	};
})()
`

// clickTabJS clicks the first tab whose aria-label or text starts with one of
// the given labels. Evaluates to true when a tab was clicked.
const clickTabJS = `
(() => {
	const labels = %s.map(l => l.toLowerCase());
	const tabs = Array.from(document.querySelectorAll('` + TabSelector + `'));
	for (const t of tabs) {
		const name = ((t.getAttribute('aria-label') || '') + '|' + (t.innerText || '')).toLowerCase();
		for (const part of name.split('|')) {
			const p = part.trim();
			if (labels.some(l => p.startsWith(l))) {
				t.click();
				return true;
			}
		}
	}
	return false;
})()
`

const readReviewsJS = `
(() => Array.from(document.querySelectorAll('` + ReviewEntrySelector + `'))
	.slice(0, %d)
	.map(e => (e.innerText || '').trim()))()
`

const readAboutJS = `
(() => {
	const panel = document.querySelector('` + AboutPanelSelector + `');
	return panel ? (panel.innerText || '').trim() : '';
})()
`

const expandHoursJS = `
(() => {
	const el = document.querySelector('` + HoursExpandSelector + `');
	if (!el) return '';
	el.click();
	return 'clicked';
})()
`

const readHoursPanelJS = `
(() => {
	const panel = document.querySelector('` + HoursPanelSelector + `');
	return panel ? (panel.innerText || '').trim() : '';
})()
`

// MaxReviewExcerpts bounds how many review excerpts are kept per listing
const MaxReviewExcerpts = 3

// DetailOptions tunes DetailExtractor timing
type DetailOptions struct {
	Language           string
	ListingTimeout     time.Duration
	InteractionSettle  time.Duration
	InteractionTimeout time.Duration
	MaxRetries         int
}

// DetailExtractor visits listing pages in the shared browser tab
type DetailExtractor struct {
	browserCtx context.Context
	opts       DetailOptions
	logger     *utils.Logger
}

// NewDetailExtractor creates a DetailExtractor bound to the main browser tab
func NewDetailExtractor(browserCtx context.Context, opts DetailOptions, logger *utils.Logger) *DetailExtractor {
	return &DetailExtractor{browserCtx: browserCtx, opts: opts, logger: logger}
}

// Extract navigates to ref and returns a best-effort record. The only error
// returned is a navigation failure; every field problem becomes an empty value.
func (d *DetailExtractor) Extract(ctx context.Context, ref models.ListingRef) (models.ListingRecord, error) {
	tabCtx, cancel := mergeCancel(d.browserCtx, ctx)
	defer cancel()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, d.opts.ListingTimeout)
	defer cancelTimeout()

	err := utils.RetryWithBackoff(tabCtx, d.opts.MaxRetries, func() error {
		return chromedp.Run(tabCtx,
			chromedp.Navigate(ref.URL),
			chromedp.WaitVisible(PlaceHeadlineSelector, chromedp.ByQuery),
		)
	}, d.logger)
	if err != nil {
		return models.ListingRecord{}, eris.Wrapf(err, "navigate to listing %d", ref.Order+1)
	}
	_ = utils.SleepContext(tabCtx, d.opts.InteractionSettle)

	var snap pageSnapshot
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(snapshotJS, &snap)); err != nil {
		d.logger.Debug("      snapshot failed: %v", err)
	}
	var currentURL string
	if err := chromedp.Run(tabCtx, chromedp.Location(&currentURL)); err != nil || currentURL == "" {
		currentURL = ref.URL
	}

	rec := buildRecord(&snap, d.opts.Language, currentURL)

	if _, needExpand := resolveHours(&snap, d.opts.Language); needExpand {
		rec.OpeningHours = d.expandHours(tabCtx)
	}
	rec.Reviews = d.readReviews(tabCtx)
	rec.About = d.readAbout(tabCtx)

	return rec, nil
}

// step runs one bounded interaction. Failures are logged and swallowed.
func (d *DetailExtractor) step(ctx context.Context, name string, actions ...chromedp.Action) bool {
	stepCtx, cancel := context.WithTimeout(ctx, d.opts.InteractionTimeout)
	defer cancel()
	if err := chromedp.Run(stepCtx, actions...); err != nil {
		d.logger.Debug("      %s skipped: %v", name, err)
		return false
	}
	return true
}

func (d *DetailExtractor) expandHours(ctx context.Context) string {
	var clicked string
	if !d.step(ctx, "hours expand", chromedp.Evaluate(expandHoursJS, &clicked)) || clicked == "" {
		return ""
	}
	_ = utils.SleepContext(ctx, d.opts.InteractionSettle)

	var text string
	if !d.step(ctx, "hours read", chromedp.Evaluate(readHoursPanelJS, &text)) {
		return ""
	}
	return NormalizeHours(text)
}

func (d *DetailExtractor) openTab(ctx context.Context, name string, field Field) bool {
	labels, _ := json.Marshal(Labels(d.opts.Language, field))
	var clicked bool
	if !d.step(ctx, name+" tab", chromedp.Evaluate(fmt.Sprintf(clickTabJS, labels), &clicked)) || !clicked {
		return false
	}
	_ = utils.SleepContext(ctx, d.opts.InteractionSettle)
	return true
}

func (d *DetailExtractor) readReviews(ctx context.Context) []string {
	if !d.openTab(ctx, "reviews", FieldReviewsTab) {
		return nil
	}
	var raw []string
	if !d.step(ctx, "reviews read", chromedp.Evaluate(fmt.Sprintf(readReviewsJS, MaxReviewExcerpts), &raw)) {
		return nil
	}
	return cleanReviews(raw, MaxReviewExcerpts)
}

// readAbout returns the about tab text verbatim
func (d *DetailExtractor) readAbout(ctx context.Context) string {
	if !d.openTab(ctx, "about", FieldAboutTab) {
		return ""
	}
	var text string
	if !d.step(ctx, "about read", chromedp.Evaluate(readAboutJS, &text)) {
		return ""
	}
	return text
}

// mergeCancel derives a context from the chromedp tab context that is also
// cancelled when ctx is. chromedp needs its own context as the parent.
func mergeCancel(tab, ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(tab)
	stop := context.AfterFunc(ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
