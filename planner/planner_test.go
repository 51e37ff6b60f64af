package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/utils"
)

type stubClassifier struct {
	loc   Locale
	err   error
	calls int
}

func (s *stubClassifier) Classify(_ context.Context, _, _, _ string) (Locale, error) {
	s.calls++
	return s.loc, s.err
}

func TestPlanExplicitLanguage(t *testing.T) {
	cls := &stubClassifier{}
	p := NewQueryPlanner(cls, utils.NewNopLogger())

	spec, err := p.Plan(context.Background(), Params{Type: "Dentist", City: "Paris", Country: "France", Language: "fr", Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, "fr", spec.Language)
	assert.Equal(t, "fr-FR", spec.BrowserLocale)
	assert.Equal(t, "Dentist à Paris, France", spec.Query)
	assert.Equal(t, 2, spec.Limit)
	assert.Zero(t, cls.calls, "classifier must not run when a language is given")
}

func TestPlanUsesClassifier(t *testing.T) {
	cls := &stubClassifier{loc: Locale{Language: "pt", BrowserLocale: "pt-BR", CountryCode: "BR", Preposition: "em", DisplayName: "Portuguese"}}
	p := NewQueryPlanner(cls, utils.NewNopLogger())

	spec, err := p.Plan(context.Background(), Params{Type: "Padaria", City: "Curitiba", Country: "Brasil", Address: "Batel"})
	require.NoError(t, err)

	assert.Equal(t, 1, cls.calls)
	assert.Equal(t, "pt-BR", spec.BrowserLocale)
	assert.Equal(t, "BR", spec.CountryCode)
	assert.Equal(t, "Padaria em Batel, Curitiba, Brasil", spec.Query)
	assert.Equal(t, DefaultLimit, spec.Limit)
}

func TestPlanFallsBackToEnglishOnClassifierError(t *testing.T) {
	cls := &stubClassifier{err: errors.New("boom")}
	p := NewQueryPlanner(cls, utils.NewNopLogger())

	spec, err := p.Plan(context.Background(), Params{Type: "Bakery", City: "Oslo", Country: "Norway"})
	require.NoError(t, err)
	assert.Equal(t, EnglishFallback.BrowserLocale, spec.BrowserLocale)
	assert.Equal(t, "Bakery in Oslo, Norway", spec.Query)
}

func TestPlanUnknownLanguageUsesEnglish(t *testing.T) {
	p := NewQueryPlanner(nil, utils.NewNopLogger())
	spec, err := p.Plan(context.Background(), Params{Type: "Cafe", City: "Reykjavik", Country: "Iceland", Language: "is"})
	require.NoError(t, err)
	assert.Equal(t, "en", spec.Language)
}

func TestPlanRequiresTypeCityCountry(t *testing.T) {
	p := NewQueryPlanner(nil, utils.NewNopLogger())
	_, err := p.Plan(context.Background(), Params{Type: "Cafe", City: " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParam))
}

func TestParseClassifierOutput(t *testing.T) {
	loc, err := ParseClassifierOutput([]byte("thinking...\n{\"languageCode\":\"DE\",\"locale\":\"de-DE\",\"countryCode\":\"AT\",\"displayName\":\"German\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, "de", loc.Language)
	assert.Equal(t, "AT", loc.CountryCode)
	assert.Equal(t, "in", loc.Preposition, "missing preposition is filled from the table")

	_, err = ParseClassifierOutput([]byte(`{"languageCode":"fr"}`))
	assert.Error(t, err)

	_, err = ParseClassifierOutput([]byte("no json here"))
	assert.Error(t, err)
}
