package gmaps

// CSS selectors for the Maps UI. Structural hooks (role, data-item-id) come
// first; class names change often and are only used where nothing else exists.
const (
	SearchURLBase = "https://www.google.com/maps/search/"

	// Results feed
	FeedSelector          = `div[role="feed"]`
	ListingAnchorSelector = `a[href*="/maps/place/"]`
	PlaceHeadlineSelector = `h1`

	// Detail page
	RatingWidgetSelector = `div.F7nice`
	HoursExpandSelector  = `[data-item-id="oh"], div[jsaction*="openhours"], button[aria-expanded="false"][data-hide-tooltip-on-mouse-move]`
	HoursPanelSelector   = `table.eK4R0e, div.t39EBf, div[aria-label][role="region"] table`
	TabSelector          = `button[role="tab"]`
	ReviewEntrySelector  = `div.jftiEf span.wiI7pd, div[data-review-id] span.wiI7pd`
	AboutPanelSelector   = `div[role="region"].m6QErb, div.m6QErb.DxyBCb`
)

// consentSelectors dismiss the cookie wall shown to EU visitors
var consentSelectors = []string{
	`button[aria-label="Accept all"]`,
	`button[aria-label="Tout accepter"]`,
	`button[aria-label="Alles akzeptieren"]`,
	`button[aria-label="Aceptar todo"]`,
	`button[aria-label="Aceitar tudo"]`,
	`button[aria-label="Accetta tutto"]`,
	`button[aria-label="I agree"]`,
	`button[jsname="b3VHJd"]`,
}
