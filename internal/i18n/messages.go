// Package i18n holds the localized user-facing message tables. Reason codes
// stay stable across languages; only the hint text is localized.
package i18n

import "github.com/finlit-labs/expcards/internal/domain"

// DefaultLang is used when the requested language has no table or the key is
// missing from it.
const DefaultLang = "en"

var tables = map[string]map[string]string{
	"en": {
		"question_too_short": "Your question is too short. Please add a few more words.",
		domain.ReasonBannedKeywords: "Your text contains wording we cannot accept.",
		domain.ReasonURLNotAllowed: "Please remove links from your question.",
		domain.ReasonPossibleID: "Your question looks like it contains an ID number. Please remove it.",
		domain.ReasonPossiblePhone: "Your question looks like it contains a phone number. Please remove it.",
		domain.ReasonPossibleEmail: "Your question looks like it contains an email address. Please remove it.",
		domain.ReasonDisallowedDomain: "Links are only allowed to official sources.",
		domain.ReasonLowStructure: "Please describe what happened, what you did, and how it ended.",
		"no_matches": "No similar experiences found yet.",
		"invalid_request": "The request could not be understood.",
		"internal_error": "Something went wrong. Please try again.",
	},
	"fr": {
		"question_too_short": "Votre question est trop courte. Ajoutez quelques mots.",
		domain.ReasonBannedKeywords: "Votre texte contient des termes que nous ne pouvons pas accepter.",
		domain.ReasonURLNotAllowed: "Veuillez retirer les liens de votre question.",
		domain.ReasonPossibleID: "Votre question semble contenir un numéro d'identification. Veuillez le retirer.",
		domain.ReasonPossiblePhone: "Votre question semble contenir un numéro de téléphone. Veuillez le retirer.",
		domain.ReasonPossibleEmail: "Votre question semble contenir une adresse courriel. Veuillez la retirer.",
		domain.ReasonDisallowedDomain: "Les liens ne sont permis que vers des sources officielles.",
		domain.ReasonLowStructure: "Décrivez ce qui s'est passé, ce que vous avez fait et comment cela s'est terminé.",
		"no_matches": "Aucune expérience similaire trouvée pour l'instant.",
		"invalid_request": "La demande n'a pas pu être comprise.",
		"internal_error": "Une erreur s'est produite. Veuillez réessayer.",
	},
}

// Message returns the localized text for a key, falling back to English and
// then to the key itself.
func Message(lang, key string) string {
	if table, ok := tables[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := tables[DefaultLang][key]; ok {
		return msg
	}
	return key
}
