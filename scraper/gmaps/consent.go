package gmaps

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chromedp/chromedp"

	"maps-lead-scraper/utils"
)

var consentJS = func() string {
	sel, _ := json.Marshal(consentSelectors)
	return `(() => {
	for (const s of ` + string(sel) + `) {
		const btn = document.querySelector(s);
		if (btn) { btn.click(); return true; }
	}
	return false;
})()`
}()

// acceptCookies clicks through the consent wall if one is showing. Absence of
// the wall is the normal case.
func acceptCookies(ctx context.Context, logger *utils.Logger) {
	stepCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var clicked bool
	if err := chromedp.Run(stepCtx, chromedp.Evaluate(consentJS, &clicked)); err != nil {
		logger.Debug("   consent check failed: %v", err)
		return
	}
	if clicked {
		logger.Info("   [*] Accepted cookie consent")
		_ = utils.SleepContext(ctx, 1500*time.Millisecond)
	}
}
