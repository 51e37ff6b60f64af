// Package planner turns user input into a SearchSpec: the locale to browse
// with and the text to type into the map search box.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// DefaultLimit is the result limit when none is given
const DefaultLimit = 30

// ErrMissingParam is returned when type, city or country is empty
var ErrMissingParam = eris.New("missing required search parameter")

// Params is the raw input of one run
type Params struct {
	Type     string
	City     string
	Country  string
	Language string
	Address  string
	Limit    int
}

// QueryPlanner resolves Params into a SearchSpec
type QueryPlanner struct {
	classifier Classifier
	logger     *utils.Logger
}

// NewQueryPlanner creates a planner. classifier may be nil.
func NewQueryPlanner(classifier Classifier, logger *utils.Logger) *QueryPlanner {
	return &QueryPlanner{classifier: classifier, logger: logger}
}

// Plan validates p, resolves the locale and builds the search string
func (p *QueryPlanner) Plan(ctx context.Context, params Params) (models.SearchSpec, error) {
	params.Type = strings.TrimSpace(params.Type)
	params.City = strings.TrimSpace(params.City)
	params.Country = strings.TrimSpace(params.Country)
	params.Address = strings.TrimSpace(params.Address)
	for name, v := range map[string]string{"type": params.Type, "city": params.City, "country": params.Country} {
		if v == "" {
			return models.SearchSpec{}, eris.Wrapf(ErrMissingParam, "%s is required", name)
		}
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	loc := p.resolveLocale(ctx, params)

	return models.SearchSpec{
		Type:          params.Type,
		City:          params.City,
		Country:       params.Country,
		Address:       params.Address,
		Language:      loc.Language,
		BrowserLocale: loc.BrowserLocale,
		CountryCode:   loc.CountryCode,
		DisplayName:   loc.DisplayName,
		Preposition:   loc.Preposition,
		Limit:         params.Limit,
		Query:         BuildSearchString(params.Type, loc.Preposition, params.Address, params.City, params.Country),
	}, nil
}

func (p *QueryPlanner) resolveLocale(ctx context.Context, params Params) Locale {
	code := strings.ToLower(strings.TrimSpace(params.Language))
	if code != "" {
		if loc, ok := LookupLanguage(code); ok {
			return loc
		}
		p.logger.Warn("Unknown language code %q, using English", code)
		return EnglishFallback
	}

	if p.classifier == nil {
		p.logger.Info("No language given and no classifier configured, using English")
		return EnglishFallback
	}

	loc, err := p.classifier.Classify(ctx, params.Type, params.City, params.Country)
	if err != nil {
		p.logger.Warn("Language classifier failed, using English: %v", err)
		return EnglishFallback
	}
	p.logger.Info("Classifier picked %s (%s) for %s, %s", loc.DisplayName, loc.BrowserLocale, params.City, params.Country)
	return loc
}

// BuildSearchString renders "<type> <preposition> [<address>,] <city>, <country>"
func BuildSearchString(kind, preposition, address, city, country string) string {
	if address != "" {
		return fmt.Sprintf("%s %s %s, %s, %s", kind, preposition, address, city, country)
	}
	return fmt.Sprintf("%s %s %s, %s", kind, preposition, city, country)
}
