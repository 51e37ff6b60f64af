package gmaps

import (
	"regexp"
	"strings"
	"unicode"

	"maps-lead-scraper/models"
)

// domNode is one element captured by the detail snapshot script
type domNode struct {
	ItemID string `json:"itemId"`
	Aria   string `json:"aria"`
	Text   string `json:"text"`
	Href   string `json:"href"`
}

// pageSnapshot is everything the detail page exposes in one script round-trip.
// Resolvers below turn it into a ListingRecord without touching the browser.
type pageSnapshot struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Items            []domNode `json:"items"`    // elements carrying data-item-id
	Labelled         []domNode `json:"labelled"` // buttons/links carrying aria-label
	RatingSpans      []string  `json:"ratingSpans"`
	RatingWidgetText string    `json:"ratingWidgetText"`
	ReviewCountText  string    `json:"reviewCountText"`
	HoursAttr        string    `json:"hoursAttr"`
	HoursText        string    `json:"hoursText"`
	HoursExpandable  bool      `json:"hoursExpandable"`
	Description      string    `json:"description"`
}

var (
	urlPattern         = regexp.MustCompile(`(?i)https?://[^\s"'<>]+`)
	timeTokenPattern   = regexp.MustCompile(`\d{1,2}(?:[:.h]\d{2}|\s?(?:AM|PM|am|pm))`)
	digitPattern       = regexp.MustCompile(`\d`)
	ratingPattern      = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
	parenCountPattern  = regexp.MustCompile(`\(\s*([\d][\d.,\s\x{00a0}\x{202f}]*)\)`)
	leadCountPattern   = regexp.MustCompile(`(\d[\d.,\x{00a0}\x{202f}]*)\s*$`)
	coordinatesPattern = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
	nonDigitPattern    = regexp.MustCompile(`\D`)
)

// websitePrefixes are the localized labels Maps puts in front of a bare domain
var websitePrefixes = []string{
	"Website:", "Site web:", "Site Web:", "Sitio web:", "Site:", "Webseite:", "Sito web:", "Website", "Site web",
}

const phoneItemPrefix = "phone:tel:"

// cleanText drops icon-font glyphs (private use area) and collapses whitespace
func cleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r >= 0xE000 && r <= 0xF8FF {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}

func (s *pageSnapshot) item(id string) (domNode, bool) {
	for _, n := range s.Items {
		if n.ItemID == id {
			return n, true
		}
	}
	return domNode{}, false
}

func (s *pageSnapshot) itemWithPrefix(prefix string) (domNode, bool) {
	for _, n := range s.Items {
		if strings.HasPrefix(n.ItemID, prefix) {
			return n, true
		}
	}
	return domNode{}, false
}

// byLabel scans labelled and structural nodes for an aria-label or text that
// starts with one of labels and returns the node plus the remainder.
func (s *pageSnapshot) byLabel(labels []string) (domNode, string, bool) {
	for _, group := range [][]domNode{s.Labelled, s.Items} {
		for _, n := range group {
			if rest, ok := hasLabelPrefix(n.Aria, labels); ok {
				return n, rest, true
			}
			if rest, ok := hasLabelPrefix(cleanText(n.Text), labels); ok {
				return n, rest, true
			}
		}
	}
	return domNode{}, "", false
}

// stripLabel drops a leading localized label from v
func stripLabel(v string, labels []string) string {
	if rest, ok := hasLabelPrefix(v, labels); ok {
		return rest
	}
	return v
}

// nodeValue prefers visible text, then the aria-label with its label stripped
func nodeValue(n domNode, labels []string) string {
	if t := cleanText(n.Text); t != "" {
		if rest, ok := hasLabelPrefix(t, labels); ok {
			return rest
		}
		return t
	}
	if rest, ok := hasLabelPrefix(n.Aria, labels); ok {
		return rest
	}
	return strings.TrimSpace(n.Aria)
}

// structuralOrLabel resolves a field via data-item-id first and the locale
// label table second.
func (s *pageSnapshot) structuralOrLabel(itemID string, lang string, field Field) string {
	labels := Labels(lang, field)
	if n, ok := s.item(itemID); ok {
		if v := nodeValue(n, labels); v != "" {
			return v
		}
	}
	if n, rest, ok := s.byLabel(labels); ok {
		if rest != "" {
			return rest
		}
		return cleanText(n.Text)
	}
	return ""
}

func resolveAddress(s *pageSnapshot, lang string) string {
	return s.structuralOrLabel("address", lang, FieldAddress)
}

func resolvePhone(s *pageSnapshot, lang string) string {
	labels := Labels(lang, FieldPhone)
	if n, ok := s.itemWithPrefix(phoneItemPrefix); ok {
		if v := nodeValue(n, labels); v != "" {
			return v
		}
		return strings.TrimPrefix(n.ItemID, phoneItemPrefix)
	}
	if _, rest, ok := s.byLabel(labels); ok {
		return rest
	}
	return ""
}

func resolveWebsite(s *pageSnapshot, lang string) string {
	labels := Labels(lang, FieldWebsite)
	if n, ok := s.item("authority"); ok {
		if n.Href != "" {
			return SanitizeWebsite(n.Href)
		}
		return SanitizeWebsite(nodeValue(n, labels))
	}
	if n, rest, ok := s.byLabel(labels); ok {
		if n.Href != "" {
			return SanitizeWebsite(n.Href)
		}
		return SanitizeWebsite(rest)
	}
	return ""
}

// SanitizeWebsite extracts the first well-formed URL from raw. Without one it
// strips localized "Website:" style prefixes and defaults the scheme to http.
// Google redirect links (/url?q=...) are unwrapped. A clean URL is returned as is.
func SanitizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if m := urlPattern.FindString(raw); m != "" {
		return unwrapRedirect(m)
	}
	lower := strings.ToLower(raw)
	for _, p := range websitePrefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			raw = strings.TrimSpace(raw[len(p):])
			break
		}
	}
	raw = strings.TrimLeft(raw, "/")
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return ""
	}
	return "http://" + raw
}

func unwrapRedirect(u string) string {
	if !strings.Contains(u, "google.") || !strings.Contains(u, "/url?") {
		return u
	}
	idx := strings.Index(u, "q=")
	if idx < 0 {
		return u
	}
	target := u[idx+2:]
	if amp := strings.Index(target, "&"); amp >= 0 {
		target = target[:amp]
	}
	if m := urlPattern.FindString(target); m != "" {
		return m
	}
	return u
}

// resolveHours returns the opening hours if readable without interaction, and
// whether the expand control should be clicked to get them.
func resolveHours(s *pageSnapshot, lang string) (string, bool) {
	attr := s.HoursAttr
	if attr == "" {
		if n, _, ok := s.byLabel(Labels(lang, FieldHours)); ok {
			attr = n.Aria
		}
	}
	if timeTokenPattern.MatchString(attr) {
		return NormalizeHours(attr), false
	}
	if digitPattern.MatchString(s.HoursText) {
		return NormalizeHours(s.HoursText), false
	}
	return "", s.HoursExpandable
}

// NormalizeHours folds a multi-line schedule into one line separated by "; "
func NormalizeHours(raw string) string {
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(cleanText(line)), " ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}

// ParseRating returns the first purely numeric span as a dotted decimal
func ParseRating(spans []string) string {
	for _, sp := range spans {
		sp = strings.TrimSpace(sp)
		if ratingPattern.MatchString(sp) {
			return strings.Replace(sp, ",", ".", 1)
		}
	}
	return ""
}

// ParseReviewCount prefers the dedicated control's digits and falls back to
// the first "(1,234)" pattern in the rating widget text.
func ParseReviewCount(dedicated, widgetText string) string {
	if d := nonDigitPattern.ReplaceAllString(dedicated, ""); d != "" {
		return d
	}
	if m := parenCountPattern.FindStringSubmatch(widgetText); len(m) == 2 {
		return nonDigitPattern.ReplaceAllString(m[1], "")
	}
	return ""
}

// resolveReviewCount falls back to a labelled node reading like "312 avis"
// when neither the dedicated control nor the rating widget has a count.
func resolveReviewCount(s *pageSnapshot, lang string) string {
	if c := ParseReviewCount(s.ReviewCountText, s.RatingWidgetText); c != "" {
		return c
	}
	labels := Labels(lang, FieldReviewCount)
	for _, n := range s.Labelled {
		if c := countBeforeLabel(n.Aria, labels); c != "" {
			return c
		}
	}
	return ""
}

// countBeforeLabel returns the digits directly in front of the first label
// found in text, or "".
func countBeforeLabel(text string, labels []string) string {
	lower := strings.ToLower(text)
	for _, label := range labels {
		idx := strings.Index(lower, strings.ToLower(label))
		if idx <= 0 || len(lower) != len(text) {
			continue
		}
		if m := leadCountPattern.FindStringSubmatch(strings.TrimSpace(text[:idx])); len(m) == 2 {
			return nonDigitPattern.ReplaceAllString(m[1], "")
		}
	}
	return ""
}

func resolveClaimStatus(s *pageSnapshot, lang string) string {
	if _, ok := s.item("merchant"); ok {
		return models.ClaimStatusUnclaimed
	}
	if _, _, ok := s.byLabel(Labels(lang, FieldClaim)); ok {
		return models.ClaimStatusUnclaimed
	}
	return models.ClaimStatusClaimed
}

func resolvePlusCode(s *pageSnapshot, lang string) string {
	return s.structuralOrLabel("oloc", lang, FieldPlusCode)
}

func resolveLocatedIn(s *pageSnapshot, lang string) string {
	return s.structuralOrLabel("locatedin", lang, FieldLocatedIn)
}

// actionVocabulary maps each action tag to its label field, in output order
var actionVocabulary = []struct {
	tag   string
	field Field
}{
	{"book", FieldBook},
	{"order", FieldOrder},
	{"menu", FieldMenu},
	{"reserve", FieldReserve},
	{"schedule", FieldSchedule},
}

// resolveActions returns the action tags in vocabulary order. Structural
// hooks count directly; a labelled node yields the one tag whose longest label
// it starts with, so "Book appointment" is schedule and not book too.
func resolveActions(s *pageSnapshot, lang string) []string {
	found := make(map[string]bool)
	for _, group := range [][]domNode{s.Items, s.Labelled} {
		for _, n := range group {
			if tag := structuralActionTag(n.ItemID); tag != "" {
				found[tag] = true
				continue
			}
			if tag := labelledActionTag(n, lang); tag != "" {
				found[tag] = true
			}
		}
	}

	var tags []string
	for _, a := range actionVocabulary {
		if found[a.tag] {
			tags = append(tags, a.tag)
		}
	}
	return tags
}

func structuralActionTag(itemID string) string {
	id := strings.ToLower(itemID)
	for _, a := range actionVocabulary {
		if id == a.tag || strings.HasPrefix(id, "action:"+a.tag) {
			return a.tag
		}
	}
	return ""
}

func labelledActionTag(n domNode, lang string) string {
	text := cleanText(n.Text)
	best, bestLen := "", 0
	for _, a := range actionVocabulary {
		for _, label := range Labels(lang, a.field) {
			if len(label) <= bestLen {
				continue
			}
			_, onAria := hasLabelPrefix(n.Aria, []string{label})
			_, onText := hasLabelPrefix(text, []string{label})
			if onAria || onText {
				best, bestLen = a.tag, len(label)
			}
		}
	}
	return best
}

// ParseCoordinates reads latitude and longitude from the !3d/!4d markers of a
// place URL. ok is false when the markers are missing.
func ParseCoordinates(placeURL string) (lat, lng string, ok bool) {
	m := coordinatesPattern.FindStringSubmatch(placeURL)
	if len(m) != 3 {
		return "", "", false
	}
	return m[1], m[2], true
}

// cleanReviews trims excerpts, drops empty ones and keeps at most max
func cleanReviews(raw []string, max int) []string {
	var out []string
	for _, r := range raw {
		r = strings.TrimFunc(r, unicode.IsSpace)
		if r == "" {
			continue
		}
		out = append(out, r)
		if len(out) == max {
			break
		}
	}
	return out
}

// buildRecord maps a snapshot to a ListingRecord. Interaction-derived fields
// (expanded hours, reviews, about) are filled by the caller.
func buildRecord(s *pageSnapshot, lang, currentURL string) models.ListingRecord {
	rec := models.ListingRecord{
		Name:        cleanText(s.Name),
		Category:    cleanText(s.Category),
		Address:     resolveAddress(s, lang),
		Phone:       resolvePhone(s, lang),
		Website:     resolveWebsite(s, lang),
		Rating:      ParseRating(s.RatingSpans),
		ReviewCount: resolveReviewCount(s, lang),
		ClaimStatus: resolveClaimStatus(s, lang),
		PlusCode:    resolvePlusCode(s, lang),
		LocatedIn:   resolveLocatedIn(s, lang),
		Description: stripLabel(cleanText(s.Description), Labels(lang, FieldDescription)),
		Actions:     resolveActions(s, lang),
		SourceURL:   currentURL,
	}
	rec.OpeningHours, _ = resolveHours(s, lang)
	if lat, lng, ok := ParseCoordinates(currentURL); ok {
		rec.Latitude, rec.Longitude = lat, lng
	}
	return rec
}
