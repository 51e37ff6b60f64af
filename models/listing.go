package models

// SearchSpec is the resolved search for one run. Built once by the planner.
type SearchSpec struct {
	Type          string
	City          string
	Country       string
	Address       string // optional street/district qualifier
	Language      string // e.g. "fr"
	BrowserLocale string // e.g. "fr-FR"
	CountryCode   string
	DisplayName   string
	Preposition   string // "in", "à", "em"...
	Limit         int
	Query         string // the text typed into the map search box
}

// ListingRef locates one listing in the results feed
type ListingRef struct {
	Key   string // normalized URL, unique within a run
	URL   string
	Order int // 0-based discovery position
}

// ListingRecord is what a listing detail page yields. Empty strings and nil
// slices mean "not found"; the assembler turns them into sentinels.
type ListingRecord struct {
	Name         string
	Category     string
	Address      string
	Phone        string
	Website      string
	Rating       string
	ReviewCount  string
	Reviews      []string // at most 3 excerpts
	OpeningHours string
	Latitude     string
	Longitude    string
	ClaimStatus  string // ClaimStatusClaimed or ClaimStatusUnclaimed
	PlusCode     string
	LocatedIn    string
	Description  string
	Actions      []string

	// About is the verbatim text of the listing's "about" tab. It is never
	// decomposed here; the enrichment worker parses it.
	About string

	SourceURL string
}

const (
	ClaimStatusClaimed   = "claimed"
	ClaimStatusUnclaimed = "unclaimed"
)
