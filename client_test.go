package expcards

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

const goodContent = "I noticed my account was frozen after unusual activity on a weekend. " +
	"I called the bank and verified my identity over the phone. " +
	"Access was restored the next morning and I enabled alerts."

func openTestClient(t *testing.T) *Client {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(context.Background(),
		WithLivePath(filepath.Join(dir, "live.db")),
		WithDemoPath(filepath.Join(dir, "demo.db")),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpenSeedsAndAsk(t *testing.T) {
	c := openTestClient(t)

	ans, err := c.Ask(context.Background(), Question{
		Text:   "Why was my Interac transfer delayed due to security checks?",
		Region: "ca",
		Demo:   true,
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ans.Matches) == 0 {
		t.Fatal("expected at least one match against the seeded demo store")
	}
	top := ans.Matches[0]
	if top.Score <= 0 {
		t.Errorf("top score = %v, want > 0", top.Score)
	}
	if top.Confidence != "high" {
		t.Errorf("top confidence = %q, want %q", top.Confidence, "high")
	}
	if len(top.Why) == 0 {
		t.Error("expected a why trail on the top match")
	}
}

func TestAskLiveStoreSeededWhenEmpty(t *testing.T) {
	c := openTestClient(t)

	ans, err := c.Ask(context.Background(), Question{
		Text:   "Why was my Interac transfer delayed due to security checks?",
		Region: "ca",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ans.Matches) == 0 {
		t.Fatal("expected matches from the seeded live store")
	}
}

func TestAskQuestionTooShort(t *testing.T) {
	c := openTestClient(t)

	_, err := c.Ask(context.Background(), Question{Text: "help", Region: "ca"})
	if !errors.Is(err, ErrQuestionTooShort) {
		t.Fatalf("err = %v, want ErrQuestionTooShort", err)
	}
}

func TestAskSafetyRejection(t *testing.T) {
	c := openTestClient(t)

	_, err := c.Ask(context.Background(), Question{
		Text:   "My card was blocked, call me at 416-555-0199 please",
		Region: "ca",
	})
	if !errors.Is(err, ErrSafetyRejected) {
		t.Fatalf("err = %v, want ErrSafetyRejected", err)
	}
	if got := RejectionReason(err); got != "possible_phone" {
		t.Errorf("reason = %q, want %q", got, "possible_phone")
	}
}

func TestAddCard(t *testing.T) {
	c := openTestClient(t)

	card, err := c.AddCard(context.Background(), NewCard{
		Title:    "Account frozen over a weekend",
		Category: "Security",
		Tags:     "Frozen, Security",
		Content:  goodContent,
	})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if card.ID == 0 {
		t.Error("expected a non-zero card id")
	}
	if card.Lang != "en" {
		t.Errorf("lang = %q, want default %q", card.Lang, "en")
	}
	if len(card.Tags) != 2 || card.Tags[0] != "frozen" {
		t.Errorf("tags = %v, want normalized [frozen security]", card.Tags)
	}
}

func TestAddCardRejectsLowStructure(t *testing.T) {
	c := openTestClient(t)

	_, err := c.AddCard(context.Background(), NewCard{
		Title:    "Short note",
		Category: "Misc",
		Content:  "Nothing much happened.",
	})
	if !errors.Is(err, ErrSafetyRejected) {
		t.Fatalf("err = %v, want ErrSafetyRejected", err)
	}
	if got := RejectionReason(err); got != "low_structure_score" {
		t.Errorf("reason = %q, want %q", got, "low_structure_score")
	}
}

func TestOpenTwiceReseedsDemo(t *testing.T) {
	dir := t.TempDir()
	livePath := filepath.Join(dir, "live.db")
	demoPath := filepath.Join(dir, "demo.db")

	first, err := Open(context.Background(), WithLivePath(livePath), WithDemoPath(demoPath))
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(context.Background(), WithLivePath(livePath), WithDemoPath(demoPath))
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()

	if err := second.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
