package match

import (
	"sort"

	"github.com/finlit-labs/expcards/internal/domain"
)

// RankOptions holds the result-set composition knobs.
type RankOptions struct {
	MinScore    float64 // results strictly below this are discarded
	ResultLimit int     // total results kept after sorting
	TopVisible  int     // size of the immediately visible subset
}

// DefaultRankOptions returns the reference thresholds.
func DefaultRankOptions() RankOptions {
	return RankOptions{MinScore: 18.0, ResultLimit: 5, TopVisible: 3}
}

// Cutoffs are the confidence-label score boundaries.
type Cutoffs struct {
	High   float64
	Medium float64
}

// DefaultCutoffs returns the reference confidence boundaries.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{High: 30.0, Medium: 22.0}
}

// Label buckets a score into a confidence label.
func (c Cutoffs) Label(score float64) domain.Confidence {
	switch {
	case score >= c.High:
		return domain.ConfidenceHigh
	case score >= c.Medium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// Candidate pairs a card with the term vector of its content.
type Candidate struct {
	Card   domain.Card
	Vector TermVector
}

// Ranker scores candidates and composes the final result set.
type Ranker struct {
	scorer  *Scorer
	opts    RankOptions
	cutoffs Cutoffs
}

// NewRanker creates a ranker.
func NewRanker(scorer *Scorer, opts RankOptions, cutoffs Cutoffs) *Ranker {
	return &Ranker{scorer: scorer, opts: opts, cutoffs: cutoffs}
}

// Rank scores every candidate, discards scores below the minimum, sorts
// descending, truncates to the result limit, and splits into the visible
// subset and the deferred remainder. Candidates are expected in
// descending-id order; the stable sort preserves that order for equal
// scores, so re-running on an unchanged store yields identical results.
func (r *Ranker) Rank(q QueryTerms, cands []Candidate) (visible, deferred []domain.Match) {
	scored := make([]domain.Match, 0, len(cands))
	for _, c := range cands {
		score, why := r.scorer.Score(q, c.Card, c.Vector)
		if score < r.opts.MinScore {
			continue
		}
		scored = append(scored, domain.Match{
			Card:       c.Card,
			Score:      score,
			Confidence: r.cutoffs.Label(score),
			Why:        why,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.opts.ResultLimit {
		scored = scored[:r.opts.ResultLimit]
	}

	split := r.opts.TopVisible
	if split > len(scored) {
		split = len(scored)
	}
	return scored[:split], scored[split:]
}
