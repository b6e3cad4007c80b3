package match

import (
	"math"
	"strings"
	"testing"

	"github.com/finlit-labs/expcards/internal/domain"
)

func contentVector(c domain.Card) TermVector {
	return VectorOf(Tokenize(c.Content))
}

func TestScoreSimilarityAndWhyTrail(t *testing.T) {
	card := domain.Card{
		Title:    "E-transfer delay",
		Category: "Transfers",
		Tags:     "etransfer,delay",
		Content:  "My transfer was pending. The transfer stayed pending due to security checks.",
	}
	q := NewQueryTerms("My transfer is pending and I don't know why")

	s := NewScorer(DefaultWeights())
	score, why := s.Score(q, card, contentVector(card))

	if score <= 0 {
		t.Fatalf("expected positive score, got %v", score)
	}
	if len(why) == 0 {
		t.Fatal("expected non-empty why trail")
	}
	if !strings.HasPrefix(why[0], "text_similarity=") {
		t.Errorf("why[0] = %q, want text_similarity= prefix", why[0])
	}
}

func TestScoreTagBonusCapped(t *testing.T) {
	card := domain.Card{
		Tags:    "otp,pending,transfer,login,suspicious,scam",
		Content: "unrelated narrative text",
	}
	q := NewQueryTerms("otp pending transfer login suspicious scam plus unrelated extra words")

	s := NewScorer(DefaultWeights())
	score, why := s.Score(q, card, contentVector(card))

	// Six overlapping tags at 3.0 each would be 18.0; the cap holds it at 15.0.
	base, _ := s.Score(q, domain.Card{Content: card.Content}, contentVector(card))
	bonus := score - base
	if bonus > 15.0+1e-9 {
		t.Errorf("tag bonus = %v, want at most 15.0", bonus)
	}
	if bonus < 15.0-1e-9 {
		t.Errorf("tag bonus = %v, want exactly 15.0 for six overlapping tags", bonus)
	}

	var tagLine string
	for _, w := range why {
		if strings.HasPrefix(w, "tag_overlap=") {
			tagLine = w
		}
	}
	if tagLine == "" {
		t.Fatal("expected tag_overlap entry in why trail")
	}
	if n := strings.Count(tagLine, ","); n > 5 {
		t.Errorf("why trail shows more than 6 tags: %q", tagLine)
	}
}

func TestScoreCategoryBonusBinary(t *testing.T) {
	card := domain.Card{Category: "Fraud", Content: "A call claimed to be CRA. I reported the fraud."}
	q := NewQueryTerms("is this a fraud call about fraud and more fraud")

	s := NewScorer(DefaultWeights())

	// Scoring twice must not accumulate anything; the bonus is 0 or 5 exactly.
	first, _ := s.Score(q, card, contentVector(card))
	second, _ := s.Score(q, card, contentVector(card))
	if first != second {
		t.Errorf("score not reproducible: %v vs %v", first, second)
	}

	plain := card
	plain.Category = "Statements"
	withoutCat, _ := s.Score(q, plain, contentVector(plain))
	if diff := first - withoutCat; diff < 5.0-1e-9 || diff > 5.0+1e-9 {
		t.Errorf("category bonus = %v, want exactly 5.0", diff)
	}
}

func TestScoreNoOverlapNoBonuses(t *testing.T) {
	card := domain.Card{Category: "Fees", Tags: "overdraft,fees", Content: "Overdraft fees were charged."}
	q := NewQueryTerms("completely unrelated question text")

	s := NewScorer(DefaultWeights())
	score, why := s.Score(q, card, contentVector(card))
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
	if len(why) != 1 || why[0] != "text_similarity=0.00" {
		t.Errorf("why = %v, want only the similarity entry", why)
	}
}

func TestScoreRoundedToTwoDecimals(t *testing.T) {
	card := domain.Card{Content: "my transfer is pending and slow today again"}
	q := NewQueryTerms("transfer pending today")

	s := NewScorer(DefaultWeights())
	score, _ := s.Score(q, card, contentVector(card))
	if scaled := score * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		t.Errorf("score %v not rounded to 2 decimal places", score)
	}
}
