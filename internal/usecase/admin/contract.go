package admin

import (
	"context"

	"github.com/finlit-labs/expcards/internal/domain"
)

// CardWriter inserts cards into a store.
type CardWriter interface {
	Insert(ctx context.Context, c domain.Card) (int64, error)
	Name() string
}

// Gate validates card submissions.
type Gate interface {
	CheckCard(title, category, tags, content string) error
}

// Invalidator drops cached vectors when the store changes.
type Invalidator interface {
	Invalidate(ctx context.Context, store string, id int64) error
}
