// Package expcards embeds the experience-card retrieval engine in a Go
// process: SQLite-backed card stores, the safety gate, and the ranking
// pipeline, without the HTTP layer.
package expcards

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/match"
	cardrepo "github.com/finlit-labs/expcards/internal/repository/card"
	"github.com/finlit-labs/expcards/internal/repository/veccache"
	"github.com/finlit-labs/expcards/internal/safety"
	"github.com/finlit-labs/expcards/internal/seed"
	adminuc "github.com/finlit-labs/expcards/internal/usecase/admin"
	askuc "github.com/finlit-labs/expcards/internal/usecase/ask"
)

const (
	defaultLivePath       = "live.db"
	defaultDemoPath       = "demo.db"
	defaultMinStructure   = 4
	defaultMinQuestionLen = 8
)

// Question is an ask request.
type Question struct {
	Text     string
	Region   string // "ca" or "us"
	Lang     string // "en" or "fr", defaults to "en"
	Demo     bool   // answer from the curated demo store only
	ShowMore bool   // include the deferred result set
}

// Match is a scored card returned for a question.
type Match struct {
	ID         int64
	Title      string
	Category   string
	Tags       []string
	Content    string
	Lang       string
	Score      float64
	Confidence string
	Why        []string
}

// Answer holds the ranked results for one question.
type Answer struct {
	Question      string
	Matches       []Match
	Deferred      []Match
	DeferredCount int
}

// NewCard is an experience card submission.
type NewCard struct {
	Title    string
	Category string
	Tags     string // comma-separated
	Content  string
	Lang     string
}

// Card is a stored experience card.
type Card struct {
	ID        int64
	Title     string
	Category  string
	Tags      []string
	Content   string
	Lang      string
	CreatedAt time.Time
}

// Errors re-exported for embedded callers, which cannot import internal
// packages directly.
var (
	ErrQuestionTooShort = domain.ErrQuestionTooShort
	ErrSafetyRejected   = domain.ErrSafetyRejected
)

// SafetyError carries the gate's rejection reason code.
type SafetyError = domain.SafetyError

// RejectionReason extracts the reason code from a safety rejection, or ""
// if err is not one.
func RejectionReason(err error) string {
	return domain.RejectionReason(err)
}

// Client is the expcards embedded entry point.
type Client struct {
	live  *cardrepo.Repo
	demo  *cardrepo.Repo
	ask   *askuc.Service
	admin *adminuc.Service
}

// Open creates a Client backed by two SQLite stores. The live store is seeded
// with the curated card set only when empty; the demo store is reseeded on
// every call.
func Open(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		livePath:       defaultLivePath,
		demoPath:       defaultDemoPath,
		minStructure:   defaultMinStructure,
		minQuestionLen: defaultMinQuestionLen,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	live, err := cardrepo.Open(ctx, cfg.livePath, "live")
	if err != nil {
		return nil, fmt.Errorf("expcards: open live store: %w", err)
	}
	demo, err := cardrepo.Open(ctx, cfg.demoPath, "demo")
	if err != nil {
		_ = live.Close()
		return nil, fmt.Errorf("expcards: open demo store: %w", err)
	}

	now := time.Now().UTC()
	if _, err := seed.IfEmpty(ctx, live, now); err != nil {
		_ = live.Close()
		_ = demo.Close()
		return nil, fmt.Errorf("expcards: seed live store: %w", err)
	}
	if _, err := seed.Reseed(ctx, demo, now); err != nil {
		_ = live.Close()
		_ = demo.Close()
		return nil, fmt.Errorf("expcards: reseed demo store: %w", err)
	}

	return wireClient(live, demo, cfg), nil
}

func wireClient(live, demo *cardrepo.Repo, cfg *clientConfig) *Client {
	banned := cfg.banned
	if len(banned) == 0 {
		banned = safety.DefaultBannedKeywords()
	}
	allowed := cfg.allowed
	if len(allowed) == 0 {
		allowed = safety.DefaultAllowedDomains()
	}
	policy := safety.NewPolicy(banned, allowed, cfg.minStructure)

	ranker := match.NewRanker(
		match.NewScorer(match.DefaultWeights()),
		match.DefaultRankOptions(),
		match.DefaultCutoffs(),
	)
	vectors := veccache.Compute{}

	askSvc := askuc.New(live, demo, policy, vectors, ranker, cfg.logger).
		WithMinQuestionLen(cfg.minQuestionLen)
	adminSvc := adminuc.New(live, policy, vectors, cfg.logger)

	return &Client{
		live:  live,
		demo:  demo,
		ask:   askSvc,
		admin: adminSvc,
	}
}

// Ask ranks stored cards against the question.
// Rejections surface as *SafetyError via errors.As.
func (c *Client) Ask(ctx context.Context, q Question) (Answer, error) {
	res, err := c.ask.Ask(ctx, domain.Question{
		Text:     q.Text,
		Region:   domain.Region(q.Region),
		Lang:     q.Lang,
		Demo:     q.Demo,
		ShowMore: q.ShowMore,
	})
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Question:      res.Question,
		Matches:       toMatches(res.Visible),
		Deferred:      toMatches(res.Deferred),
		DeferredCount: res.DeferredCount,
	}, nil
}

// AddCard gates and stores a card in the live store.
func (c *Client) AddCard(ctx context.Context, in NewCard) (Card, error) {
	card, err := c.admin.AddCard(ctx, adminuc.NewCard{
		Title:       in.Title,
		Category:    in.Category,
		Tags:        in.Tags,
		Content:     in.Content,
		ContentLang: in.Lang,
	})
	if err != nil {
		return Card{}, err
	}
	return toCard(card), nil
}

// Ping checks both card stores.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.live.Ping(ctx); err != nil {
		return fmt.Errorf("ping live store: %w", err)
	}
	if err := c.demo.Ping(ctx); err != nil {
		return fmt.Errorf("ping demo store: %w", err)
	}
	return nil
}

// Close releases both card stores.
func (c *Client) Close() error {
	errLive := c.live.Close()
	errDemo := c.demo.Close()
	if errLive != nil {
		return errLive
	}
	return errDemo
}

func toMatches(in []domain.Match) []Match {
	out := make([]Match, 0, len(in))
	for _, m := range in {
		out = append(out, Match{
			ID:         m.Card.ID,
			Title:      m.Card.Title,
			Category:   m.Card.Category,
			Tags:       m.Card.TagList(),
			Content:    m.Card.Content,
			Lang:       m.Card.ContentLang,
			Score:      m.Score,
			Confidence: string(m.Confidence),
			Why:        m.Why,
		})
	}
	return out
}

func toCard(c domain.Card) Card {
	return Card{
		ID:        c.ID,
		Title:     c.Title,
		Category:  c.Category,
		Tags:      c.TagList(),
		Content:   c.Content,
		Lang:      c.ContentLang,
		CreatedAt: c.CreatedAt,
	}
}
