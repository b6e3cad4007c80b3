package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/finlit-labs/expcards/internal/domain"
)

// Weights holds the tuned scoring constants. They are configuration values,
// not derived quantities (see config defaults).
type Weights struct {
	TagBonus      float64 // additive bonus per overlapping tag
	TagBonusCap   float64 // ceiling on the total tag bonus
	CategoryBonus float64 // flat bonus when the category appears in the query
	MaxWhyTags    int     // at most this many tags shown in the why trail
}

// DefaultWeights returns the reference scoring constants.
func DefaultWeights() Weights {
	return Weights{
		TagBonus:      3.0,
		TagBonusCap:   15.0,
		CategoryBonus: 5.0,
		MaxWhyTags:    6,
	}
}

// QueryTerms is the precomputed view of a question used for scoring: its
// normalized form, token sequence, term vector, and token set.
type QueryTerms struct {
	Normalized string
	Tokens     []string
	Vector     TermVector
	set        map[string]struct{}
}

// NewQueryTerms tokenizes and vectorizes a question once so every candidate
// card is scored against the same inputs.
func NewQueryTerms(text string) QueryTerms {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return QueryTerms{
		Normalized: Normalize(text),
		Tokens:     tokens,
		Vector:     VectorOf(tokens),
		set:        set,
	}
}

// HasToken reports whether the query contains the token.
func (q QueryTerms) HasToken(t string) bool {
	_, ok := q.set[t]
	return ok
}

// Scorer combines cosine similarity with tag-overlap and category-match
// bonuses into a final score plus an explanation trail.
type Scorer struct {
	w Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	if w.MaxWhyTags <= 0 {
		w.MaxWhyTags = DefaultWeights().MaxWhyTags
	}
	return &Scorer{w: w}
}

// Score rates a card against the query. cardVec is the term vector of the
// card's content. The returned why trail records, in order, the raw cosine
// similarity, the tag-overlap bonus with its contributing tags, and the
// category-match flag. The final score is rounded to two decimals.
func (s *Scorer) Score(q QueryTerms, card domain.Card, cardVec TermVector) (float64, []string) {
	sim := Cosine(q.Vector, cardVec)
	score := sim * 100.0

	why := make([]string, 0, 3)
	why = append(why, fmt.Sprintf("text_similarity=%.2f", sim))

	if overlap := s.tagOverlap(q, card); len(overlap) > 0 {
		bonus := math.Min(s.w.TagBonusCap, s.w.TagBonus*float64(len(overlap)))
		score += bonus

		shown := overlap
		if len(shown) > s.w.MaxWhyTags {
			shown = shown[:s.w.MaxWhyTags]
		}
		why = append(why, fmt.Sprintf("tag_overlap=+%.1f (%s)", bonus, strings.Join(shown, ", ")))
	}

	if cat := strings.ToLower(strings.TrimSpace(card.Category)); cat != "" &&
		strings.Contains(q.Normalized, cat) {
		score += s.w.CategoryBonus
		why = append(why, fmt.Sprintf("category_match=+%.1f", s.w.CategoryBonus))
	}

	return round2(score), why
}

// tagOverlap returns the card tags that also appear as tokens in the query,
// preserving the card's tag order.
func (s *Scorer) tagOverlap(q QueryTerms, card domain.Card) []string {
	var overlap []string
	for _, tag := range card.TagList() {
		if q.HasToken(tag) {
			overlap = append(overlap, tag)
		}
	}
	return overlap
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
