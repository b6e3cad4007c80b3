// Package card implements the SQLite-backed experience-card store.
package card

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/finlit-labs/expcards/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS experiences (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	tags TEXT NOT NULL,
	content TEXT NOT NULL,
	content_lang TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Repo is a card store bound to a single SQLite file. name distinguishes the
// live and demo stores in logs and cache keys.
type Repo struct {
	db   *sql.DB
	name string
}

// Open opens the SQLite database at path with WAL mode and a busy timeout,
// and creates the schema if missing.
func Open(ctx context.Context, path, name string) (*Repo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode on %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema on %s: %w", path, err)
	}

	return &Repo{db: db, name: name}, nil
}

// Name returns the store's identifier ("live" or "demo").
func (r *Repo) Name() string { return r.name }

// Insert stores a new card and returns its assigned id.
func (r *Repo) Insert(ctx context.Context, c domain.Card) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO experiences (title, category, tags, content, content_lang, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Title, c.Category, c.Tags, c.Content, c.ContentLang,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListDesc returns all cards ordered by id descending (most recent first).
func (r *Repo) ListDesc(ctx context.Context) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, category, tags, content, content_lang, created_at
		 FROM experiences ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// Get returns a single card by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, category, tags, content, content_lang, created_at
		 FROM experiences WHERE id = ?`, id)

	c, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Card{}, domain.ErrCardNotFound
		}
		return domain.Card{}, err
	}
	return c, nil
}

// Count returns the number of stored cards.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM experiences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// ReplaceAll wipes the store and inserts the given cards in one transaction.
// Used by the demo reseed on startup.
func (r *Repo) ReplaceAll(ctx context.Context, cards []domain.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM experiences`); err != nil {
		return fmt.Errorf("wipe cards: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO experiences (title, category, tags, content, content_lang, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.ExecContext(ctx,
			c.Title, c.Category, c.Tags, c.Content, c.ContentLang,
			c.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert card %q: %w", c.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s store: %w", r.name, err)
	}
	return nil
}

// Close closes the database.
func (r *Repo) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner) (domain.Card, error) {
	var c domain.Card
	var createdAt string
	if err := s.Scan(&c.ID, &c.Title, &c.Category, &c.Tags, &c.Content,
		&c.ContentLang, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Card{}, err
		}
		return domain.Card{}, fmt.Errorf("scan card: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Card{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = ts
	return c, nil
}
