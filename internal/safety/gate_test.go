package safety

import (
	"errors"
	"testing"

	"github.com/finlit-labs/expcards/internal/domain"
)

func testPolicy() Policy {
	return NewPolicy(DefaultBannedKeywords(), DefaultAllowedDomains(), 4)
}

// goodContent passes all five structure checks: long enough, experience and
// action phrases, an outcome keyword, three sentences.
const goodContent = "I noticed my account was frozen after unusual activity on a weekend. " +
	"I called the bank and verified my identity over the phone. " +
	"Access was restored the next morning and I enabled alerts."

func TestCheckQuestion(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		wantReason string // "" means accepted
	}{
		{"clean question", "my transfer is pending and I don't know why", ""},
		{"banned keyword", "please share your otp with me", domain.ReasonBannedKeywords},
		{"any url rejected", "is https://canada.ca/banking legit?", domain.ReasonURLNotAllowed},
		{"eleven digit run", "my id is 12345678901 can you check", domain.ReasonPossibleID},
		{"phone shaped", "call 555-123-4567 now", domain.ReasonPossiblePhone},
		{"phone with dots", "reach me at 555.123.4567 please", domain.ReasonPossiblePhone},
		{"email shaped", "write to me at someone@example.com", domain.ReasonPossibleEmail},
	}

	p := testPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckQuestion(tt.question)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("expected accept, got %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrSafetyRejected) {
				t.Fatalf("expected safety rejection, got %v", err)
			}
			if got := domain.RejectionReason(err); got != tt.wantReason {
				t.Errorf("reason = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestCheckQuestionShortCircuitOrder(t *testing.T) {
	// Contains both a URL and an email; the URL check runs first.
	p := testPolicy()
	err := p.CheckQuestion("see https://evil.example and mail me@example.com")
	if got := domain.RejectionReason(err); got != domain.ReasonURLNotAllowed {
		t.Errorf("reason = %q, want %q", got, domain.ReasonURLNotAllowed)
	}
}

func TestCheckCard(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		tags       string
		content    string
		wantReason string
	}{
		{"good card", "Account frozen", "frozen,security", goodContent, ""},
		{
			"banned keyword in tags",
			"Harmless title", "password,reset", goodContent,
			domain.ReasonBannedKeywords,
		},
		{
			"disallowed domain",
			"Link card", "scam",
			goodContent + " See https://totally-random-site.example/x for details.",
			domain.ReasonDisallowedDomain,
		},
		{
			"allowed domain ok",
			"Link card", "scam",
			goodContent + " Official guidance is at https://www.canada.ca/banking.",
			"",
		},
		{
			"short two sentence content",
			"Too thin", "fees",
			"Fees are bad. I avoided them.",
			domain.ReasonLowStructure,
		},
	}

	p := testPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckCard(tt.title, "Security", tt.tags, tt.content)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("expected accept, got %v", err)
				}
				return
			}
			if got := domain.RejectionReason(err); got != tt.wantReason {
				t.Errorf("reason = %q, want %q (err=%v)", got, tt.wantReason, err)
			}
		})
	}
}

func TestCheckCardDoesNotMutate(t *testing.T) {
	p := testPolicy()
	content := goodContent
	_ = p.CheckCard("Title", "Security", "tags", content)
	if content != goodContent {
		t.Error("gate mutated its input")
	}
}
