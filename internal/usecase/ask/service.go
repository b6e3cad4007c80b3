// Package ask implements the question pipeline: normalize, length check,
// safety gate, candidate selection, rank.
package ask

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/match"
)

const defaultMinQuestionLen = 8

// Service answers questions against the card stores.
type Service struct {
	live    CardReader
	demo    CardReader
	gate    Gate
	vectors Vectors
	ranker  *match.Ranker
	minLen  int
	logger  *zap.Logger
}

// New creates an ask service.
func New(live, demo CardReader, gate Gate, vectors Vectors, ranker *match.Ranker, logger *zap.Logger) *Service {
	return &Service{
		live:    live,
		demo:    demo,
		gate:    gate,
		vectors: vectors,
		ranker:  ranker,
		minLen:  defaultMinQuestionLen,
		logger:  logger,
	}
}

// WithMinQuestionLen overrides the minimum question length.
func (s *Service) WithMinQuestionLen(n int) *Service {
	if n > 0 {
		s.minLen = n
	}
	return s
}

// Result is the answer to a question. Deferred is populated only when the
// question asked for it; DeferredCount is always set so callers can offer
// "show more".
type Result struct {
	Question      string
	Visible       []domain.Match
	Deferred      []domain.Match
	DeferredCount int
}

// Ask runs the retrieval pipeline. An empty Visible with a nil error means no
// card scored above the threshold — a valid outcome, distinct from a safety
// rejection.
func (s *Service) Ask(ctx context.Context, q domain.Question) (Result, error) {
	text := strings.TrimSpace(q.Text)
	if utf8.RuneCountInString(text) < s.minLen {
		return Result{}, domain.ErrQuestionTooShort
	}

	if err := s.gate.CheckQuestion(text); err != nil {
		s.logger.Info("question rejected",
			zap.String("reason", domain.RejectionReason(err)),
			zap.String("region", string(q.Region)),
		)
		return Result{}, err
	}

	cards, err := s.candidates(ctx, q)
	if err != nil {
		return Result{}, err
	}

	reader := s.reader(q)
	terms := match.NewQueryTerms(text)

	cands := make([]match.Candidate, 0, len(cards))
	for _, c := range cards {
		vec, err := s.vectors.VectorFor(ctx, reader.Name(), c)
		if err != nil {
			return Result{}, fmt.Errorf("vector for card %d: %w", c.ID, err)
		}
		cands = append(cands, match.Candidate{Card: c, Vector: vec})
	}

	visible, deferred := s.ranker.Rank(terms, cands)

	res := Result{
		Question:      text,
		Visible:       visible,
		DeferredCount: len(deferred),
	}
	if q.ShowMore {
		res.Deferred = deferred
	}
	return res, nil
}

// candidates returns the card set to score. In demo mode the demo store is
// used and restricted to cards carrying the region marker tag.
func (s *Service) candidates(ctx context.Context, q domain.Question) ([]domain.Card, error) {
	cards, err := s.reader(q).ListDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if !q.Demo {
		return cards, nil
	}

	marker := q.Region.Marker()
	if marker == "" {
		return cards, nil
	}
	filtered := cards[:0]
	for _, c := range cards {
		if c.HasRegionTag(marker) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *Service) reader(q domain.Question) CardReader {
	if q.Demo {
		return s.demo
	}
	return s.live
}
