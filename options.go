package expcards

import (
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	livePath string
	demoPath string

	banned       []string
	allowed      []string
	minStructure int

	minQuestionLen int

	logger *zap.Logger
}

// WithLivePath sets the SQLite file backing the live card store.
// Default: "live.db" in the working directory.
func WithLivePath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.livePath = path
	})
}

// WithDemoPath sets the SQLite file backing the demo card store.
// The demo store is wiped and reseeded on Open.
// Default: "demo.db" in the working directory.
func WithDemoPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.demoPath = path
	})
}

// WithSafetyLists overrides the built-in banned keyword and allowed domain
// lists. Either slice may be nil to keep the default for that list.
func WithSafetyLists(banned, allowedDomains []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.banned = banned
		c.allowed = allowedDomains
	})
}

// WithMinStructureScore sets how many structure checks a submitted card must
// pass. Default: 4 of 5.
func WithMinStructureScore(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minStructure = n
	})
}

// WithMinQuestionLen sets the minimum question length in runes. Default: 8.
func WithMinQuestionLen(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minQuestionLen = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
