package gmaps

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// tabOpener visits pages in a fresh tab of the shared browser
type tabOpener struct {
	browserCtx context.Context
	timeout    time.Duration
	settle     time.Duration
}

// NewTabOpener returns a PageOpener that opens one tab per visit
func NewTabOpener(browserCtx context.Context, timeout, settle time.Duration) PageOpener {
	return &tabOpener{browserCtx: browserCtx, timeout: timeout, settle: settle}
}

func (o *tabOpener) Visit(ctx context.Context, link string) (*Page, error) {
	tabCtx, closeTab := chromedp.NewContext(o.browserCtx)
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	runCtx, cancel := context.WithTimeout(tabCtx, o.timeout)
	defer cancel()

	page := &Page{}
	err := chromedp.Run(runCtx,
		chromedp.Navigate(link),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(o.settle),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
		chromedp.Location(&page.URL),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "visit %s", link)
	}
	// rendered text is optional; markup is enough to mine
	_ = chromedp.Run(runCtx, chromedp.Evaluate(`document.body ? document.body.innerText : ''`, &page.Text))
	return page, nil
}
