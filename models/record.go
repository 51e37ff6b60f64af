package models

import (
	"encoding/json"
	"time"
)

// Unavailable marks a field that could not be resolved. The enrichment worker
// compares against this exact literal, so it must not be localised.
const Unavailable = "Não disponível"

// Contact status values for FinalRecord.ContactStatus
const (
	ContactStatusMined    = "mined"
	ContactStatusDeferred = "deferred"
)

// TextList is a list field that serializes to Unavailable when empty, so the
// key is always present with a value.
type TextList []string

func (l TextList) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return json.Marshal(Unavailable)
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts either a JSON array or the sentinel string
func (l *TextList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == Unavailable || s == "" {
			*l = nil
		} else {
			*l = TextList{s}
		}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = arr
	return nil
}

// FinalRecord is one line of the hand-off artifact
type FinalRecord struct {
	// Listing
	Name         string   `json:"nome_empresa"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	Rating       string   `json:"rating"`
	ReviewCount  string   `json:"review_count"`
	Reviews      TextList `json:"reviews"`
	OpeningHours string   `json:"opening_hours"`
	Latitude     string   `json:"latitude"`
	Longitude    string   `json:"longitude"`
	ClaimStatus  string   `json:"claim_status"`
	PlusCode     string   `json:"plus_code"`
	LocatedIn    string   `json:"located_in"`
	Description  string   `json:"description"`
	Actions      TextList `json:"actions"`
	About        string   `json:"about"`

	// Contact
	ContactStatus string            `json:"contact_status"`
	Emails        TextList          `json:"emails"`
	SitePhones    TextList          `json:"site_phones"`
	Socials       map[string]string `json:"socials"`
	ContactPages  TextList          `json:"contact_pages"`

	// Provenance
	RunID     string    `json:"run_id"`
	Query     string    `json:"query"`
	MapURL    string    `json:"map_url"`
	Position  int       `json:"position"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// CoverageReport counts how many records carry a real value per field
type CoverageReport struct {
	TotalRecords   int
	WithWebsite    int
	WithPhone      int
	WithEmail      int
	WithRating     int
	WithHours      int
	WithCoords     int
	Unclaimed      int
	Deferred       int
	SocialCoverage map[string]int
}
