package gmaps

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

var listingHrefsJS = fmt.Sprintf(`(function() {
	const els = Array.from(document.querySelectorAll(%q));
	const hrefs = [];
	for (const el of els) {
		const href = el.href || el.getAttribute("href");
		if (href && href.includes("/maps/place/")) {
			hrefs.push(href);
		}
	}
	return hrefs;
})()`, ListingAnchorSelector)

var scrollFeedJS = fmt.Sprintf(`(function() {
	const panel = document.querySelector(%q);
	if (panel) {
		panel.scrollTop = panel.scrollHeight;
		return true;
	}
	window.scrollBy(0, 1000);
	return false;
})()`, FeedSelector)

// browserFeed reads the results feed of the search tab
type browserFeed struct {
	tabCtx context.Context
}

func (f *browserFeed) VisibleListings(ctx context.Context) ([]string, error) {
	runCtx, cancel := mergeCancel(f.tabCtx, ctx)
	defer cancel()
	var hrefs []string
	if err := chromedp.Run(runCtx, chromedp.Evaluate(listingHrefsJS, &hrefs)); err != nil {
		return nil, err
	}
	return hrefs, nil
}

func (f *browserFeed) Advance(ctx context.Context) (bool, error) {
	runCtx, cancel := mergeCancel(f.tabCtx, ctx)
	defer cancel()
	var scrolled bool
	if err := chromedp.Run(runCtx, chromedp.Evaluate(scrollFeedJS, &scrolled)); err != nil {
		return false, err
	}
	return scrolled, nil
}
