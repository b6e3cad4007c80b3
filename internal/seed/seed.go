// Package seed loads the curated experience-card sets: once into an empty
// live store, and on every start into the demo store.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finlit-labs/expcards/internal/domain"
)

// CardStore is the write surface the seeder needs.
type CardStore interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, c domain.Card) (int64, error)
	ReplaceAll(ctx context.Context, cards []domain.Card) error
}

// Cards returns the full curated set (Canada then USA) with the given
// creation timestamp. Demo cards carry their region marker in the tags field
// so region-restricted presentation mode can select them.
func Cards(now time.Time) []domain.Card {
	out := make([]domain.Card, 0, len(canadaCards)+len(usaCards))
	for _, f := range canadaCards {
		out = append(out, f.toCard(now, domain.RegionCanada))
	}
	for _, f := range usaCards {
		out = append(out, f.toCard(now, domain.RegionUSA))
	}
	return out
}

func (f cardFixture) toCard(now time.Time, region domain.Region) domain.Card {
	tags := f.tags
	if marker := region.Marker(); marker != "" && !strings.Contains(tags, marker) {
		tags = tags + "," + marker
	}
	return domain.Card{
		Title:       f.title,
		Category:    f.category,
		Tags:        tags,
		Content:     f.content,
		ContentLang: f.lang,
		CreatedAt:   now.UTC(),
	}
}

// IfEmpty inserts the curated set when the store has no cards. Returns the
// number of cards inserted (zero when the store was already populated).
func IfEmpty(ctx context.Context, store CardStore, now time.Time) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count before seed: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	cards := Cards(now)
	for _, c := range cards {
		if _, err := store.Insert(ctx, c); err != nil {
			return 0, fmt.Errorf("seed insert %q: %w", c.Title, err)
		}
	}
	return len(cards), nil
}

// Reseed unconditionally replaces the store's contents with the curated set.
// The demo store runs this on every process start.
func Reseed(ctx context.Context, store CardStore, now time.Time) (int, error) {
	cards := Cards(now)
	if err := store.ReplaceAll(ctx, cards); err != nil {
		return 0, fmt.Errorf("reseed: %w", err)
	}
	return len(cards), nil
}
