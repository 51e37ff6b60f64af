package gmaps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/utils"
)

// fakeSite serves canned markup per URL and records every visit
type fakeSite struct {
	pages  map[string]string
	visits []string
}

func (f *fakeSite) Visit(_ context.Context, link string) (*Page, error) {
	f.visits = append(f.visits, link)
	html, ok := f.pages[link]
	if !ok {
		return nil, errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	return &Page{URL: link, HTML: html}, nil
}

type denyAll struct{}

func (denyAll) Verify(context.Context, string) bool { return false }

func newMiner(site *fakeSite) *ContactMiner {
	return NewContactMiner(site, nil, 0, utils.NewNopLogger())
}

func TestMineStopsAtHomeWhenEmailFound(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"http://clinic.fr": `<html><body>
			<a href="mailto:hello@clinic.fr">Mail</a>
			<a href="/contact">Contact</a>
			<a href="https://www.instagram.com/clinic">IG</a>
		</body></html>`,
	}}

	b := newMiner(site).Mine(context.Background(), "clinic.fr")
	assert.Equal(t, []string{"hello@clinic.fr"}, b.Emails)
	assert.Equal(t, []string{"http://clinic.fr"}, site.visits)
	assert.Equal(t, "https://www.instagram.com/clinic", b.Socials["instagram"])
	assert.Equal(t, []string{"http://clinic.fr"}, b.Visited)
}

func TestMineVisitsContactPageBeforeSocial(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"https://clinic.fr": `<a href="https://facebook.com/clinicparis">fb</a>
			<a href="/nous-contacter">Contactez-nous</a>`,
		"https://clinic.fr/nous-contacter": `<p>Écrivez à rdv@clinic.fr</p>`,
	}}

	b := newMiner(site).Mine(context.Background(), "https://clinic.fr")
	require.Equal(t, []string{"https://clinic.fr", "https://clinic.fr/nous-contacter"}, site.visits)
	assert.Equal(t, []string{"rdv@clinic.fr"}, b.Emails)
	assert.Equal(t, "https://facebook.com/clinicparis", b.Socials["facebook"])
}

func TestMineIgnoresKeywordInDomain(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"https://www.sobremesa.com.br": `<a href="/produtos">Produtos</a>
			<a href="/fale-conosco">Fale conosco</a>`,
		"https://www.sobremesa.com.br/produtos":     `<p>Tortas e bolos</p>`,
		"https://www.sobremesa.com.br/fale-conosco": `<p>pedidos@sobremesa.com.br</p>`,
	}}

	b := newMiner(site).Mine(context.Background(), "https://www.sobremesa.com.br")
	require.Equal(t, []string{"https://www.sobremesa.com.br", "https://www.sobremesa.com.br/fale-conosco"}, site.visits)
	assert.Equal(t, []string{"pedidos@sobremesa.com.br"}, b.Emails)
}

func TestMineFallsBackToFacebookLast(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"http://padaria.com.br": `<a href="https://www.facebook.com/sharer/sharer.php?u=x">share</a>
			<a href="https://www.instagram.com/padaria">ig</a>
			<a href="https://www.facebook.com/padariabatel">fb</a>`,
		"https://www.facebook.com/padariabatel": `<div>contato: padaria@gmail.com</div>`,
	}}

	b := newMiner(site).Mine(context.Background(), "http://padaria.com.br")
	require.Len(t, site.visits, 2)
	assert.Equal(t, "https://www.facebook.com/padariabatel", site.visits[1])
	assert.Equal(t, "https://www.facebook.com/padariabatel", b.Socials["facebook"])
	assert.Equal(t, []string{"padaria@gmail.com"}, b.Emails)
}

func TestMineReturnsEmptyEmailWhenNothingFound(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"http://quiet.example":           `<a href="https://www.facebook.com/quiet">fb</a>`,
		"https://www.facebook.com/quiet": `<p>no address here</p>`,
	}}

	b := newMiner(site).Mine(context.Background(), "http://quiet.example")
	assert.Empty(t, b.Emails)
	assert.Equal(t, []string{"http://quiet.example", "https://www.facebook.com/quiet"}, b.Visited)
}

func TestMineSkipsProviderAndNonHTTPWebsites(t *testing.T) {
	for _, website := range []string{
		"https://www.google.com/maps/place/X",
		"https://business.google.com/site",
		"mailto:owner@shop.example",
		"ftp://files.example",
		"",
	} {
		site := &fakeSite{}
		b := newMiner(site).Mine(context.Background(), website)
		assert.Empty(t, site.visits, website)
		assert.Empty(t, b.Visited, website)
	}
}

func TestMineSurvivesUnreachableHome(t *testing.T) {
	site := &fakeSite{}
	b := newMiner(site).Mine(context.Background(), "http://down.example")
	assert.Equal(t, []string{"http://down.example"}, site.visits)
	assert.Empty(t, b.Visited)
	assert.Empty(t, b.Emails)
}

func TestMineDropsUnverifiedEmails(t *testing.T) {
	site := &fakeSite{pages: map[string]string{
		"http://shop.example": `info@shop.example`,
	}}
	m := NewContactMiner(site, denyAll{}, 0, utils.NewNopLogger())
	b := m.Mine(context.Background(), "http://shop.example")
	assert.Empty(t, b.Emails)
}

func TestExtractEmailsDropsAssetsAndDuplicates(t *testing.T) {
	html := `<img src="logo@2x.png"> Info@Shop.example info@shop.example
		<a href="mailto:%20sales@shop.example">x</a> bg@3x.webp`
	assert.Equal(t, []string{"info@shop.example", "sales@shop.example"}, ExtractEmails(html))
}

func TestExtractPhonesDigitBounds(t *testing.T) {
	text := "Tel: +33 1 42 68 53 00\nFax (11) 99999-9999\nRef 12-34\nID 1234567890123456789"
	phones := ExtractPhones(text)
	assert.Equal(t, []string{"+33 1 42 68 53 00", "(11) 99999-9999"}, phones)
}

func TestPlatformOf(t *testing.T) {
	cases := map[string]string{
		"https://www.facebook.com/clinic":               "facebook",
		"https://m.facebook.com/sharer.php?u=x":         "",
		"https://www.facebook.com/share/abc":            "",
		"https://x.com/clinic":                          "twitter",
		"https://www.linkedin.com/company/clinic":       "linkedin",
		"https://youtu.be/abc":                          "youtube",
		"https://wa.me/5541999999999":                   "whatsapp",
		"https://linktr.ee/clinic":                      "linktree",
		"https://www.tiktok.com/@clinic":                "tiktok",
		"https://dropbox.com/clinic":                    "",
		"https://clinic.fr/facebook.com-is-in-the-path": "",
	}
	for link, want := range cases {
		assert.Equal(t, want, PlatformOf(link), link)
	}
}

func TestPreferredProfileOrdersBusinessPagesFirst(t *testing.T) {
	assert.Equal(t, "li", PreferredProfile(map[string]string{"instagram": "ig", "linkedin": "li"}))
	assert.Equal(t, "ig", PreferredProfile(map[string]string{"instagram": "ig", "youtube": "yt", "whatsapp": "wa"}))
	assert.Equal(t, "", PreferredProfile(map[string]string{"whatsapp": "wa"}))
}

func TestFindContactLinkSkipsSocialAndSelf(t *testing.T) {
	anchors := ParseAnchors(`
		<a href="/">Home</a>
		<a href="https://facebook.com/contact">contact us on fb</a>
		<a href="tel:+331234">Call</a>
		<a href="/fale-conosco#form">Fale conosco</a>`, "https://loja.com.br/")
	assert.Equal(t, "https://loja.com.br/fale-conosco", FindContactLink(anchors, "https://loja.com.br/"))
}

func TestFindContactLinkMatchesPathNotHost(t *testing.T) {
	anchors := ParseAnchors(`
		<a href="/loja">Loja</a>
		<a href="https://contactlenses.com/shop">Shop</a>
		<a href="/institucional?secao=empresa">Institucional</a>`, "https://www.minhaempresa.com.br/")
	assert.Equal(t, "https://www.minhaempresa.com.br/institucional?secao=empresa",
		FindContactLink(anchors, "https://www.minhaempresa.com.br/"))
	assert.Empty(t, FindContactLink(anchors[:2], "https://www.minhaempresa.com.br/"))
}

func TestNormalizeCandidate(t *testing.T) {
	assert.Equal(t, "http://clinic.fr", NormalizeCandidate(" clinic.fr "))
	assert.Equal(t, "http://clinic.fr", NormalizeCandidate("//clinic.fr"))
	assert.Equal(t, "https://clinic.fr", NormalizeCandidate("https://clinic.fr"))
	assert.Equal(t, "", NormalizeCandidate("Não disponível"))
}
