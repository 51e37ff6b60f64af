package planner

// Locale is the language setup used for one search
type Locale struct {
	Language      string `json:"languageCode"`
	BrowserLocale string `json:"locale"`
	CountryCode   string `json:"countryCode"`
	Preposition   string `json:"preposition"`
	DisplayName   string `json:"displayName"`
}

// languageTable maps an explicit language code to its browser locale and the
// preposition used between the business type and the place.
var languageTable = map[string]Locale{
	"en": {Language: "en", BrowserLocale: "en-US", Preposition: "in", DisplayName: "English"},
	"pt": {Language: "pt", BrowserLocale: "pt-BR", Preposition: "em", DisplayName: "Portuguese"},
	"es": {Language: "es", BrowserLocale: "es-ES", Preposition: "en", DisplayName: "Spanish"},
	"fr": {Language: "fr", BrowserLocale: "fr-FR", Preposition: "à", DisplayName: "French"},
	"de": {Language: "de", BrowserLocale: "de-DE", Preposition: "in", DisplayName: "German"},
	"it": {Language: "it", BrowserLocale: "it-IT", Preposition: "a", DisplayName: "Italian"},
	"nl": {Language: "nl", BrowserLocale: "nl-NL", Preposition: "in", DisplayName: "Dutch"},
	"ja": {Language: "ja", BrowserLocale: "ja-JP", Preposition: "in", DisplayName: "Japanese"},
	"zh": {Language: "zh", BrowserLocale: "zh-CN", Preposition: "in", DisplayName: "Chinese"},
	"ko": {Language: "ko", BrowserLocale: "ko-KR", Preposition: "in", DisplayName: "Korean"},
	"ar": {Language: "ar", BrowserLocale: "ar-SA", Preposition: "في", DisplayName: "Arabic"},
	"ru": {Language: "ru", BrowserLocale: "ru-RU", Preposition: "в", DisplayName: "Russian"},
}

// EnglishFallback is used when neither an explicit code nor the classifier
// produces a usable locale.
var EnglishFallback = Locale{
	Language:      "en",
	BrowserLocale: "en-US",
	CountryCode:   "US",
	Preposition:   "in",
	DisplayName:   "English",
}

// LookupLanguage returns the table entry for code and whether it existed
func LookupLanguage(code string) (Locale, bool) {
	l, ok := languageTable[code]
	return l, ok
}
