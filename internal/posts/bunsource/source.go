// Package bunsource stores posts in a SQL table and exposes them as a
// posts.Source.
package bunsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-folio/internal/posts"
)

// ErrPostNotFound is returned when a slug has no stored record.
var ErrPostNotFound = errors.New("bunsource: post not found")

// ErrUnsupportedDriver reports a database driver Open cannot handle.
var ErrUnsupportedDriver = errors.New("bunsource: unsupported driver")

// Open connects to driver ("sqlite3" or "postgres") and returns a bun.DB with
// the matching dialect.
func Open(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("bunsource: open sqlite: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres", "postgresql":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("bunsource: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// NewRecordRepository builds the go-repository-bun repository for posts,
// keyed by slug.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Slug
		},
	})
}

// Source enumerates stored posts ordered by position then slug. Bodies are
// fetched only when an entry's loader runs.
type Source struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

var _ posts.Source = (*Source)(nil)

// New constructs a Source over db.
func New(db *bun.DB) *Source {
	return &Source{db: db, repo: NewRecordRepository(db)}
}

// EnsureSchema creates the posts table when missing.
func (s *Source) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("bunsource: create posts table: %w", err)
	}
	return nil
}

// Entries implements posts.Source.
func (s *Source) Entries(ctx context.Context) ([]posts.SourceEntry, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.ExcludeColumn("body").Order("position ASC", "slug ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("bunsource: list posts: %w", err)
	}

	entries := make([]posts.SourceEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, posts.NewEntry(record.Slug, s.bodyLoader(record.Slug)))
	}
	return entries, nil
}

func (s *Source) bodyLoader(slug string) posts.ContentLoader {
	return func(ctx context.Context) (string, error) {
		record, err := s.Get(ctx, slug)
		if err != nil {
			return "", err
		}
		return record.Body, nil
	}
}

// Get fetches the record stored under slug.
func (s *Source) Get(ctx context.Context, slug string) (*Record, error) {
	record, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

// Upsert stores body under slug, creating the record when missing. It
// reports whether a record was created.
func (s *Source) Upsert(ctx context.Context, slug, body string, position int) (*Record, bool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, false, errors.New("bunsource: slug is required")
	}

	existing, err := s.Get(ctx, slug)
	switch {
	case errors.Is(err, ErrPostNotFound):
		created, err := s.repo.Create(ctx, &Record{
			ID:       uuid.New(),
			Slug:     slug,
			Body:     body,
			Position: position,
		})
		if err != nil {
			return nil, false, fmt.Errorf("bunsource: create %s: %w", slug, err)
		}
		return created, true, nil
	case err != nil:
		return nil, false, err
	}

	existing.Body = body
	existing.Position = position
	existing.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("body", "position", "updated_at"),
	)
	if err != nil {
		return nil, false, fmt.Errorf("bunsource: update %s: %w", slug, err)
	}
	return updated, false, nil
}

// Delete removes the record stored under slug.
func (s *Source) Delete(ctx context.Context, slug string) error {
	record, err := s.Get(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, &Record{ID: record.ID})
}

func mapRepositoryError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return fmt.Errorf("bunsource: get %s: %w", slug, err)
}
