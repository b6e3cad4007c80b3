package ask

import (
	"context"

	"github.com/finlit-labs/expcards/internal/domain"
	"github.com/finlit-labs/expcards/internal/match"
)

// CardReader reads candidate cards from a store.
type CardReader interface {
	ListDesc(ctx context.Context) ([]domain.Card, error)
	Name() string
}

// Vectors supplies term vectors for card content.
type Vectors interface {
	VectorFor(ctx context.Context, store string, c domain.Card) (match.TermVector, error)
}

// Gate validates incoming questions.
type Gate interface {
	CheckQuestion(question string) error
}
