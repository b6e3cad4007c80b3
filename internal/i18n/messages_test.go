package i18n

import (
	"testing"

	"github.com/finlit-labs/expcards/internal/domain"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"english reason", "en", domain.ReasonPossiblePhone,
			"Your question looks like it contains a phone number. Please remove it."},
		{"french reason", "fr", domain.ReasonURLNotAllowed,
			"Veuillez retirer les liens de votre question."},
		{"unknown lang falls back to english", "de", "no_matches",
			"No similar experiences found yet."},
		{"unknown key falls back to key", "en", "mystery_key", "mystery_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.lang, tt.key); got != tt.want {
				t.Errorf("Message(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestEveryReasonHasBothLanguages(t *testing.T) {
	reasons := []string{
		domain.ReasonBannedKeywords, domain.ReasonDisallowedDomain,
		domain.ReasonLowStructure, domain.ReasonURLNotAllowed,
		domain.ReasonPossibleID, domain.ReasonPossiblePhone, domain.ReasonPossibleEmail,
	}
	for _, lang := range []string{"en", "fr"} {
		for _, r := range reasons {
			if Message(lang, r) == r {
				t.Errorf("missing %s translation for reason %q", lang, r)
			}
		}
	}
}
