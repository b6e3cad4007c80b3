package domain

import (
	"strings"
	"time"
)

// Card is a stored experience card: a short first-person narrative about a
// digital-banking incident. Cards are immutable once stored — the only write
// paths are insert and bulk reseed.
type Card struct {
	ID          int64
	Title       string
	Category    string
	Tags        string // comma-separated
	Content     string
	ContentLang string
	CreatedAt   time.Time
}

// TagList splits the comma-separated tags field into trimmed, lowercased
// tokens. Empty entries are dropped.
func (c Card) TagList() []string {
	if c.Tags == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasRegionTag reports whether the tags field contains the region marker as a
// substring. Region markers double as tag text ("canada", "usa") in the
// curated card sets.
func (c Card) HasRegionTag(marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Tags), marker)
}
