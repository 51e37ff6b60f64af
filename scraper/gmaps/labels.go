package gmaps

import "strings"

// Field names a piece of UI text that is matched by visible label when no
// structural hook is present.
type Field string

const (
	FieldAddress     Field = "address"
	FieldPhone       Field = "phone"
	FieldWebsite     Field = "website"
	FieldHours       Field = "hours"
	FieldPlusCode    Field = "plus_code"
	FieldLocatedIn   Field = "located_in"
	FieldClaim       Field = "claim"
	FieldReviewsTab  Field = "reviews_tab"
	FieldAboutTab    Field = "about_tab"
	FieldReviewCount Field = "review_count"
	FieldDescription Field = "description"
	FieldBook        Field = "action_book"
	FieldOrder       Field = "action_order"
	FieldMenu        Field = "action_menu"
	FieldReserve     Field = "action_reserve"
	FieldSchedule    Field = "action_schedule"
)

// DefaultLanguage is consulted when the active language has no entry
const DefaultLanguage = "en"

type labelKey struct {
	lang  string
	field Field
}

// labelTable holds visible label prefixes per (language, field). Matching is
// case-insensitive prefix matching against aria-label or text.
var labelTable = map[labelKey][]string{
	{"en", FieldAddress}:     {"Address"},
	{"en", FieldPhone}:       {"Phone"},
	{"en", FieldWebsite}:     {"Website"},
	{"en", FieldHours}:       {"Hours", "Opening hours"},
	{"en", FieldPlusCode}:    {"Plus code"},
	{"en", FieldLocatedIn}:   {"Located in"},
	{"en", FieldClaim}:       {"Claim this business", "Own this business?"},
	{"en", FieldReviewsTab}:  {"Reviews"},
	{"en", FieldAboutTab}:    {"About"},
	{"en", FieldReviewCount}: {"reviews", "review"},
	{"en", FieldDescription}: {"Description"},
	{"en", FieldBook}:        {"Book", "Book online"},
	{"en", FieldOrder}:       {"Order", "Order online"},
	{"en", FieldMenu}:        {"Menu"},
	{"en", FieldReserve}:     {"Reserve", "Reserve a table"},
	{"en", FieldSchedule}:    {"Schedule", "Appointments", "Book appointment"},

	{"fr", FieldAddress}:     {"Adresse"},
	{"fr", FieldPhone}:       {"Téléphone", "Numéro de téléphone"},
	{"fr", FieldWebsite}:     {"Site Web", "Site web"},
	{"fr", FieldHours}:       {"Horaires", "Heures d'ouverture"},
	{"fr", FieldPlusCode}:    {"Plus Code"},
	{"fr", FieldLocatedIn}:   {"Situé dans", "Se trouve dans"},
	{"fr", FieldClaim}:       {"Revendiquer cet établissement", "Vous êtes le propriétaire"},
	{"fr", FieldReviewsTab}:  {"Avis"},
	{"fr", FieldAboutTab}:    {"À propos"},
	{"fr", FieldReviewCount}: {"avis"},
	{"fr", FieldDescription}: {"Description"},
	{"fr", FieldBook}:        {"Réserver"},
	{"fr", FieldOrder}:       {"Commander"},
	{"fr", FieldMenu}:        {"Menu"},
	{"fr", FieldReserve}:     {"Réserver une table"},
	{"fr", FieldSchedule}:    {"Prendre rendez-vous", "Rendez-vous"},

	{"pt", FieldAddress}:     {"Endereço"},
	{"pt", FieldPhone}:       {"Telefone"},
	{"pt", FieldWebsite}:     {"Website", "Site"},
	{"pt", FieldHours}:       {"Horário", "Horário de funcionamento"},
	{"pt", FieldPlusCode}:    {"Plus Code"},
	{"pt", FieldLocatedIn}:   {"Localizado em", "Fica em"},
	{"pt", FieldClaim}:       {"Reivindicar esta empresa", "É o proprietário"},
	{"pt", FieldReviewsTab}:  {"Avaliações"},
	{"pt", FieldAboutTab}:    {"Sobre"},
	{"pt", FieldReviewCount}: {"avaliações", "comentários"},
	{"pt", FieldDescription}: {"Descrição"},
	{"pt", FieldBook}:        {"Reservar"},
	{"pt", FieldOrder}:       {"Pedir", "Fazer pedido"},
	{"pt", FieldMenu}:        {"Cardápio", "Menu"},
	{"pt", FieldReserve}:     {"Reservar mesa"},
	{"pt", FieldSchedule}:    {"Agendar", "Agendamento"},

	{"es", FieldAddress}:     {"Dirección"},
	{"es", FieldPhone}:       {"Teléfono"},
	{"es", FieldWebsite}:     {"Sitio web"},
	{"es", FieldHours}:       {"Horario"},
	{"es", FieldPlusCode}:    {"Plus Code"},
	{"es", FieldLocatedIn}:   {"Ubicado en", "Se encuentra en"},
	{"es", FieldClaim}:       {"Reivindicar este negocio", "¿Eres el propietario"},
	{"es", FieldReviewsTab}:  {"Reseñas"},
	{"es", FieldAboutTab}:    {"Información", "Acerca de"},
	{"es", FieldReviewCount}: {"reseñas"},
	{"es", FieldDescription}: {"Descripción"},
	{"es", FieldBook}:        {"Reservar"},
	{"es", FieldOrder}:       {"Pedir"},
	{"es", FieldMenu}:        {"Menú", "Carta"},
	{"es", FieldReserve}:     {"Reservar mesa"},
	{"es", FieldSchedule}:    {"Pedir cita", "Citas"},

	{"de", FieldAddress}:     {"Adresse"},
	{"de", FieldPhone}:       {"Telefon"},
	{"de", FieldWebsite}:     {"Website"},
	{"de", FieldHours}:       {"Öffnungszeiten"},
	{"de", FieldPlusCode}:    {"Plus Code"},
	{"de", FieldLocatedIn}:   {"Befindet sich in"},
	{"de", FieldClaim}:       {"Inhaber dieses Unternehmens", "Unternehmen beanspruchen"},
	{"de", FieldReviewsTab}:  {"Rezensionen", "Bewertungen"},
	{"de", FieldAboutTab}:    {"Info", "Über"},
	{"de", FieldReviewCount}: {"Rezensionen", "Bewertungen"},
	{"de", FieldDescription}: {"Beschreibung"},
	{"de", FieldBook}:        {"Buchen"},
	{"de", FieldOrder}:       {"Bestellen"},
	{"de", FieldMenu}:        {"Speisekarte", "Menü"},
	{"de", FieldReserve}:     {"Tisch reservieren"},
	{"de", FieldSchedule}:    {"Termin vereinbaren", "Termine"},

	{"it", FieldAddress}:     {"Indirizzo"},
	{"it", FieldPhone}:       {"Telefono"},
	{"it", FieldWebsite}:     {"Sito web"},
	{"it", FieldHours}:       {"Orari", "Orario"},
	{"it", FieldPlusCode}:    {"Plus Code"},
	{"it", FieldLocatedIn}:   {"Si trova in", "Situato in"},
	{"it", FieldClaim}:       {"Rivendica questa attività"},
	{"it", FieldReviewsTab}:  {"Recensioni"},
	{"it", FieldAboutTab}:    {"Informazioni"},
	{"it", FieldReviewCount}: {"recensioni"},
	{"it", FieldDescription}: {"Descrizione"},
	{"it", FieldBook}:        {"Prenota"},
	{"it", FieldOrder}:       {"Ordina"},
	{"it", FieldMenu}:        {"Menu"},
	{"it", FieldReserve}:     {"Prenota un tavolo"},
	{"it", FieldSchedule}:    {"Appuntamenti"},
}

// Labels returns the label prefixes for field in lang, falling back to the
// DefaultLanguage entry when lang has none.
func Labels(lang string, field Field) []string {
	if l, ok := labelTable[labelKey{strings.ToLower(lang), field}]; ok {
		return l
	}
	return labelTable[labelKey{DefaultLanguage, field}]
}

// hasLabelPrefix reports whether s starts with any of labels, ignoring case,
// and returns the remainder with separators trimmed.
func hasLabelPrefix(s string, labels []string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	for _, label := range labels {
		if len(trimmed) >= len(label) && strings.EqualFold(trimmed[:len(label)], label) {
			rest := trimmed[len(label):]
			return strings.TrimSpace(strings.TrimLeft(rest, " :：-– ")), true
		}
	}
	return "", false
}
