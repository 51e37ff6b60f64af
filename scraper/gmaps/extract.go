package gmaps

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/miekg/dns"

	"maps-lead-scraper/models"
)

var (
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._+\-]+@[a-z0-9\-]+(?:\.[a-z0-9\-]+)*\.[a-z]{2,}`)
	// digits with space, hyphen, dot or parenthesis separators on one line
	phonePattern = regexp.MustCompile(`(?:\+|\(\+?)?\d[\d \t().\-]{4,22}\d`)
)

// assetExtensions are suffixes that make an email-looking token a file name
// (retina assets like logo@2x.png match the email pattern).
var assetExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".avif", ".ico", ".bmp", ".tif", ".tiff",
	".css", ".js", ".json", ".mp4", ".webm", ".woff", ".woff2", ".ttf", ".pdf",
}

// contactKeywords match contact and about links across the languages we search in
var contactKeywords = []string{
	"contact", "contato", "contacto", "contatto", "kontakt", "contactez", "fale-conosco", "fale conosco",
	"atendimento", "impressum", "about", "sobre", "quem-somos", "quem somos", "a-propos", "à propos",
	"qui-sommes-nous", "nosotros", "chi-siamo", "uber-uns", "über uns", "over-ons", "empresa",
}

// socialDomains maps each platform bucket to the hosts that identify it
var socialDomains = map[string][]string{
	models.PlatformFacebook:  {"facebook.com", "fb.com", "fb.me"},
	models.PlatformInstagram: {"instagram.com"},
	models.PlatformTwitter:   {"twitter.com", "x.com"},
	models.PlatformLinkedIn:  {"linkedin.com"},
	models.PlatformYouTube:   {"youtube.com", "youtu.be"},
	models.PlatformTikTok:    {"tiktok.com"},
	models.PlatformWhatsApp:  {"wa.me", "whatsapp.com"},
	models.PlatformLinktree:  {"linktr.ee", "linktree.com"},
}

// profilePreference orders the platforms worth visiting for an email, business
// pages first. WhatsApp links are chat intents and never visited.
var profilePreference = []string{
	models.PlatformFacebook,
	models.PlatformLinkedIn,
	models.PlatformInstagram,
	models.PlatformTikTok,
	models.PlatformTwitter,
	models.PlatformYouTube,
	models.PlatformLinktree,
}

// Anchor is one link found on a mined page
type Anchor struct {
	Href string // absolute
	Text string
}

// ParseAnchors returns every resolvable link in markup, made absolute against base
func ParseAnchors(markup, base string) []Anchor {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	baseURL, _ := url.Parse(base)

	var anchors []Anchor
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := resolveLink(baseURL, strings.TrimSpace(href))
		if abs == "" {
			return
		}
		anchors = append(anchors, Anchor{Href: abs, Text: strings.Join(strings.Fields(sel.Text()), " ")})
	})
	return anchors
}

// MarkupText returns the visible text of markup, for pages whose rendered text
// could not be read.
func MarkupText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Find("body").Text()
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	var parsed *url.URL
	var err error
	if base != nil {
		parsed, err = base.Parse(href)
	} else {
		parsed, err = url.Parse(href)
	}
	if err != nil {
		return ""
	}
	parsed.Fragment = ""
	return parsed.String()
}

// ExtractEmails returns the distinct email tokens of markup, lower-cased, in
// order of appearance. Tokens ending in an asset extension are dropped.
func ExtractEmails(markup string) []string {
	markup = strings.ReplaceAll(markup, "%20", " ")
	seen := make(map[string]bool)
	var out []string
	for _, m := range emailPattern.FindAllString(markup, -1) {
		e := strings.ToLower(strings.Trim(m, ".-"))
		if e == "" || seen[e] || hasAssetExtension(e) {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func hasAssetExtension(token string) bool {
	for _, ext := range assetExtensions {
		if strings.HasSuffix(token, ext) {
			return true
		}
	}
	return false
}

// ExtractPhones returns distinct phone-like matches of text whose digit count
// is between 7 and 15.
func ExtractPhones(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(strings.TrimRight(m, " \t.-("))
		digits := nonDigitPattern.ReplaceAllString(m, "")
		if len(digits) < 7 || len(digits) > 15 || seen[digits] {
			continue
		}
		seen[digits] = true
		out = append(out, m)
	}
	return out
}

// PlatformOf returns the social bucket of link, or "" when it is not a social
// profile. Facebook share intents are not profiles.
func PlatformOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for _, platform := range models.SocialPlatforms {
		for _, d := range socialDomains[platform] {
			if host != d && !strings.HasSuffix(host, "."+d) {
				continue
			}
			if platform == models.PlatformFacebook && isShareIntent(u) {
				return ""
			}
			return platform
		}
	}
	return ""
}

func isShareIntent(u *url.URL) bool {
	p := strings.ToLower(u.Path)
	return strings.Contains(p, "sharer") || strings.HasPrefix(p, "/share") || strings.Contains(p, "/dialog/share")
}

// ClassifySocials fills empty buckets of bundle with the first profile link
// seen for each platform.
func ClassifySocials(anchors []Anchor, bundle *models.ContactBundle) {
	if bundle.Socials == nil {
		bundle.Socials = make(map[string]string)
	}
	for _, a := range anchors {
		platform := PlatformOf(a.Href)
		if platform == "" {
			continue
		}
		if _, ok := bundle.Socials[platform]; !ok {
			bundle.Socials[platform] = a.Href
		}
	}
}

// FindContactLink returns the first HTTP link whose text, path or query
// contains a contact or about keyword, excluding self and social links. The
// host is never matched, so a domain like sobremesa.com.br does not qualify
// every internal link.
func FindContactLink(anchors []Anchor, self string) string {
	selfKey := strings.TrimRight(strings.ToLower(self), "/")
	for _, a := range anchors {
		if !isMineable(a.Href) || PlatformOf(a.Href) != "" {
			continue
		}
		if strings.TrimRight(strings.ToLower(a.Href), "/") == selfKey {
			continue
		}
		u, err := url.Parse(a.Href)
		if err != nil {
			continue
		}
		hay := strings.ToLower(a.Text + " " + u.Path + " " + u.RawQuery)
		for _, kw := range contactKeywords {
			if strings.Contains(hay, kw) {
				return a.Href
			}
		}
	}
	return ""
}

// PreferredProfile returns the social profile to visit for an email, or ""
func PreferredProfile(socials map[string]string) string {
	for _, platform := range profilePreference {
		if link := socials[platform]; link != "" {
			return link
		}
	}
	return ""
}

// NormalizeCandidate trims raw and prefixes http:// when it has no scheme
func NormalizeCandidate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == models.Unavailable {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "http:" + raw
	}
	lower := strings.ToLower(raw)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return raw
		}
	}
	if !strings.Contains(raw, "://") {
		return "http://" + strings.TrimLeft(raw, "/")
	}
	return raw
}

// isMineable reports whether link is an http(s) URL outside the search
// provider's own domains.
func isMineable(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	labels := strings.Split(host, ".")
	for _, l := range labels[:len(labels)-1] {
		if l == "google" {
			return false
		}
	}
	return host != "goo.gl" && host != "g.page" && !strings.HasSuffix(host, ".goo.gl")
}

// EmailVerifier decides whether a mined address can receive mail
type EmailVerifier interface {
	Verify(ctx context.Context, email string) bool
}

// MXVerifier accepts an email when its domain has at least one MX record
type MXVerifier struct {
	Servers []string
	client  *dns.Client
}

// NewMXVerifier queries the given resolvers (host:port), defaulting to public ones
func NewMXVerifier(timeout time.Duration, servers ...string) *MXVerifier {
	if len(servers) == 0 {
		servers = []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	return &MXVerifier{Servers: servers, client: &dns.Client{Timeout: timeout}}
}

func (v *MXVerifier) Verify(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	msg.RecursionDesired = true

	for _, server := range v.Servers {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, "53")
		}
		resp, _, err := v.client.ExchangeContext(ctx, msg, server)
		if err != nil || resp == nil {
			continue
		}
		return resp.Rcode == dns.RcodeSuccess && len(resp.Answer) > 0
	}
	return false
}
