package ask

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/match"
)

// --- Mocks ---

type mockReader struct {
	name   string
	cards  []domain.Card
	err    error
	called bool
}

func (m *mockReader) ListDesc(context.Context) ([]domain.Card, error) {
	m.called = true
	return m.cards, m.err
}

func (m *mockReader) Name() string { return m.name }

type mockGate struct {
	err    error
	called bool
}

func (m *mockGate) CheckQuestion(string) error {
	m.called = true
	return m.err
}

type computeVectors struct{}

func (computeVectors) VectorFor(_ context.Context, _ string, c domain.Card) (match.TermVector, error) {
	return match.VectorOf(match.Tokenize(c.Content)), nil
}

func newService(live, demo *mockReader, gate *mockGate) *Service {
	ranker := match.NewRanker(match.NewScorer(match.DefaultWeights()),
		match.DefaultRankOptions(), match.DefaultCutoffs())
	return New(live, demo, gate, computeVectors{}, ranker, zap.NewNop())
}

func question(text string) domain.Question {
	return domain.Question{Text: text, Region: domain.RegionCanada, Lang: "en"}
}

// --- Tests ---

func TestAskTooShort(t *testing.T) {
	svc := newService(&mockReader{name: "live"}, &mockReader{name: "demo"}, &mockGate{})

	for _, text := range []string{"", "short", "  padded  "} {
		_, err := svc.Ask(context.Background(), question(text))
		if !errors.Is(err, domain.ErrQuestionTooShort) {
			t.Errorf("Ask(%q): expected ErrQuestionTooShort, got %v", text, err)
		}
	}
}

func TestAskSafetyRejection(t *testing.T) {
	gate := &mockGate{err: domain.NewSafetyRejection(domain.ReasonPossiblePhone)}
	live := &mockReader{name: "live"}
	svc := newService(live, &mockReader{name: "demo"}, gate)

	_, err := svc.Ask(context.Background(), question("call 555-123-4567 now"))
	if !errors.Is(err, domain.ErrSafetyRejected) {
		t.Fatalf("expected safety rejection, got %v", err)
	}
	if domain.RejectionReason(err) != domain.ReasonPossiblePhone {
		t.Errorf("reason = %q, want possible_phone", domain.RejectionReason(err))
	}
	if live.called {
		t.Error("store must not be read for rejected questions")
	}
}

func TestAskEmptyStoreReturnsEmptyMatches(t *testing.T) {
	svc := newService(&mockReader{name: "live"}, &mockReader{name: "demo"}, &mockGate{})

	res, err := svc.Ask(context.Background(), question("my transfer is pending and slow"))
	if err != nil {
		t.Fatalf("expected no error for empty store, got %v", err)
	}
	if len(res.Visible) != 0 || res.DeferredCount != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestAskRanksAgainstLiveStore(t *testing.T) {
	live := &mockReader{name: "live", cards: []domain.Card{
		{ID: 2, Title: "E-transfer delay", Category: "Transfers", Tags: "etransfer,delay,pending",
			Content: "My transfer was pending. The transfer stayed pending for hours due to checks."},
		{ID: 1, Title: "Tap limits", Category: "Cards", Tags: "tap",
			Content: "Tap payments have limits."},
	}}
	demo := &mockReader{name: "demo"}
	svc := newService(live, demo, &mockGate{})

	res, err := svc.Ask(context.Background(), question("my transfer is pending and I don't know why"))
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(res.Visible) == 0 {
		t.Fatal("expected at least one match")
	}
	if res.Visible[0].Card.ID != 2 {
		t.Errorf("top match = card %d, want 2", res.Visible[0].Card.ID)
	}
	if len(res.Visible[0].Why) == 0 {
		t.Error("expected non-empty why trail")
	}
	if demo.called {
		t.Error("demo store read outside demo mode")
	}
}

func TestAskDemoModeRestrictsByRegion(t *testing.T) {
	demo := &mockReader{name: "demo", cards: []domain.Card{
		{ID: 2, Tags: "etransfer,delay,canada",
			Content: "An Interac transfer was delayed due to security checks on the transfer."},
		{ID: 1, Tags: "zelle,scam,usa",
			Content: "A delayed transfer through Zelle is hard to reverse so transfer carefully."},
	}}
	live := &mockReader{name: "live"}
	svc := newService(live, demo, &mockGate{})

	q := question("why was my transfer delayed by security checks")
	q.Demo = true
	res, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	for _, m := range res.Visible {
		if m.Card.ID == 1 {
			t.Error("usa-tagged card returned for region ca")
		}
	}
	if live.called {
		t.Error("live store read in demo mode")
	}
}

func TestAskShowMoreExposesDeferred(t *testing.T) {
	content := "my transfer is pending and I don't know why it is pending"
	cards := make([]domain.Card, 0, 6)
	for i := 6; i >= 1; i-- {
		cards = append(cards, domain.Card{ID: int64(i), Content: content})
	}
	live := &mockReader{name: "live", cards: cards}
	svc := newService(live, &mockReader{name: "demo"}, &mockGate{})

	q := question("my transfer is pending and I don't know why")

	res, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(res.Visible) != 3 {
		t.Errorf("visible = %d, want 3", len(res.Visible))
	}
	if res.DeferredCount != 2 {
		t.Errorf("deferred count = %d, want 2 (limit 5 minus visible 3)", res.DeferredCount)
	}
	if res.Deferred != nil {
		t.Error("deferred list returned without show_more")
	}

	q.ShowMore = true
	res, err = svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask with show_more: %v", err)
	}
	if len(res.Deferred) != 2 {
		t.Errorf("deferred = %d, want 2", len(res.Deferred))
	}
}

func TestAskStoreErrorPropagates(t *testing.T) {
	live := &mockReader{name: "live", err: errors.New("disk gone")}
	svc := newService(live, &mockReader{name: "demo"}, &mockGate{})

	_, err := svc.Ask(context.Background(), question("my transfer is pending today"))
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
}
