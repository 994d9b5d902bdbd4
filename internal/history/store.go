// Package history is the SQLite-backed publication repository: every post
// the pipeline has ever published, plus the seeded verse texts the content
// generator quotes from. The selector consumes its read side; the pipeline
// its write side.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sadhuseva/gitaverse/internal/canon"
	"github.com/sadhuseva/gitaverse/internal/selector"
)

// Post is one published devotional as stored.
type Post struct {
	ID        string
	Source    canon.Source
	RefText   string
	Title     string
	Slug      string
	Body      string
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

var _ selector.History = (*Store)(nil)

// Open opens (creating if needed) the store at dbPath. A single connection
// is used for both reads and writes; SQLite serializes them for us.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			ref_text   TEXT NOT NULL,
			title      TEXT NOT NULL,
			slug       TEXT NOT NULL UNIQUE,
			body       TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);

		CREATE TABLE IF NOT EXISTS verse_texts (
			source   TEXT NOT NULL,
			ref_text TEXT NOT NULL,
			body     TEXT NOT NULL,
			PRIMARY KEY (source, ref_text)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LastPublished returns the reference of the most recently created post.
// ok is false when the store holds no posts at all.
func (s *Store) LastPublished(ctx context.Context) (canon.Reference, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source, ref_text FROM posts ORDER BY created_at DESC, rowid DESC LIMIT 1`)

	var srcName, refText string
	if err := row.Scan(&srcName, &refText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return canon.Reference{}, false, nil
		}
		return canon.Reference{}, false, fmt.Errorf("querying last post: %w", err)
	}

	src, err := canon.ParseSource(srcName)
	if err != nil {
		return canon.Reference{}, false, fmt.Errorf("last post: %w", err)
	}
	tr, err := canon.ParseTextRef(refText)
	if err != nil {
		return canon.Reference{}, false, fmt.Errorf("last post: %w", err)
	}
	return canon.Reference{Source: src, Chapter: tr.Chapter, Verse: tr.Verse}, true, nil
}

// Publications returns the full history in the shape the selector reads.
// Rows with an unknown source name are skipped; the recency filter already
// tolerates unparseable reference text.
func (s *Store) Publications(ctx context.Context) ([]selector.Publication, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, ref_text, created_at FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var pubs []selector.Publication
	for rows.Next() {
		var srcName, refText, createdAt string
		if err := rows.Scan(&srcName, &refText, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		src, err := canon.ParseSource(srcName)
		if err != nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("publication %s %s: bad timestamp %q", srcName, refText, createdAt)
		}
		pubs = append(pubs, selector.Publication{Source: src, RefText: refText, CreatedAt: ts})
	}
	return pubs, rows.Err()
}

// SavePost appends a new publication record.
func (s *Store) SavePost(ctx context.Context, p Post) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, source, ref_text, title, slug, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Source.String(), p.RefText, p.Title, p.Slug, p.Body,
		p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving post %s: %w", p.RefText, err)
	}
	return nil
}

// SlugExists reports whether a post already uses slug.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM posts WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking slug %q: %w", slug, err)
	}
	return n > 0, nil
}

// VerseText returns the seeded text of ref, if the extractor has loaded it.
func (s *Store) VerseText(ctx context.Context, ref canon.Reference) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM verse_texts WHERE source = ? AND ref_text = ?`,
		ref.Source.String(), ref.RefText()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying verse text %s: %w", ref, err)
	}
	return body, true, nil
}

// SeedVerseText inserts or replaces the text of one verse.
func (s *Store) SeedVerseText(ctx context.Context, src canon.Source, refText, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verse_texts (source, ref_text, body) VALUES (?, ?, ?)
		 ON CONFLICT (source, ref_text) DO UPDATE SET body = excluded.body`,
		src.String(), refText, body)
	if err != nil {
		return fmt.Errorf("seeding verse text %s %s: %w", src, refText, err)
	}
	return nil
}
