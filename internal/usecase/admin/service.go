// Package admin implements card submission: normalize, gate, insert.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
)

// NewCard is the submission payload before validation.
type NewCard struct {
	Title       string
	Category    string
	Tags        string
	Content     string
	ContentLang string
}

// Service handles admin card submissions into the live store.
type Service struct {
	cards   CardWriter
	gate    Gate
	vectors Invalidator
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an admin service.
func New(cards CardWriter, gate Gate, vectors Invalidator, logger *zap.Logger) *Service {
	return &Service{
		cards:   cards,
		gate:    gate,
		vectors: vectors,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AddCard validates and stores a new immutable card. There is no update path;
// rejected submissions return the gate's reason code.
func (s *Service) AddCard(ctx context.Context, in NewCard) (domain.Card, error) {
	c := domain.Card{
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Tags:        normalizeTags(in.Tags),
		Content:     strings.TrimSpace(in.Content),
		ContentLang: strings.TrimSpace(in.ContentLang),
		CreatedAt:   s.now().UTC(),
	}
	if c.ContentLang == "" {
		c.ContentLang = "en"
	}

	if err := s.gate.CheckCard(c.Title, c.Category, c.Tags, c.Content); err != nil {
		s.logger.Info("card submission rejected",
			zap.String("reason", domain.RejectionReason(err)),
			zap.String("title", c.Title),
		)
		return domain.Card{}, err
	}

	id, err := s.cards.Insert(ctx, c)
	if err != nil {
		return domain.Card{}, fmt.Errorf("store card: %w", err)
	}
	c.ID = id

	// A fresh id has no cached vector, but reseeded stores may reuse ids.
	if err := s.vectors.Invalidate(ctx, s.cards.Name(), id); err != nil {
		s.logger.Warn("vector cache invalidation failed",
			zap.Int64("card_id", id), zap.Error(err))
	}

	s.logger.Info("card stored",
		zap.Int64("card_id", id),
		zap.String("category", c.Category),
	)
	return c, nil
}

// normalizeTags trims each comma-separated tag and lowercases the list.
func normalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}
