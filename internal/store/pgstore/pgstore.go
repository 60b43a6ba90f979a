// Package pgstore serves the question bank from Postgres.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/abhisek/sbfquiz/internal/question"
)

// Storage is a question bank on a pgx connection pool.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage connects to dsn.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Storage{pool: pool}, nil
}

// Close closes the pool.
func (s *Storage) Close() {
	s.pool.Close()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

// Migrate creates the questions table if it does not exist.
func (s *Storage) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			seq      BIGSERIAL PRIMARY KEY,
			id       TEXT NOT NULL UNIQUE,
			license  TEXT NOT NULL,
			category TEXT NOT NULL,
			prompt   TEXT NOT NULL,
			image    TEXT,
			options  JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS questions_license_category ON questions (license, category)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Questions returns a license category in insertion order. Empty filters
// match everything.
func (s *Storage) Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error) {
	sel := builder().
		Select("id", "license", "category", "prompt", "image", "options").
		From(entsql.Table("questions")).
		OrderBy("seq")
	if licenseID != "" {
		sel.Where(entsql.EQ("license", licenseID))
	}
	if categoryID != "" {
		sel.Where(entsql.EQ("category", categoryID))
	}
	query, args := sel.Query()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var (
			q       question.Question
			image   *string
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.LicenseID, &q.CategoryID, &q.Prompt, &image, &options); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if image != nil {
			q.Image = *image
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %s: %w", q.ID, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// ReplaceAll wipes the bank and inserts qs in order, in one transaction.
func (s *Storage) ReplaceAll(ctx context.Context, qs []question.Question) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		query, args := builder().Delete("questions").Query()
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		for i := range qs {
			q := &qs[i]
			if q.LicenseID == "" || q.CategoryID == "" {
				return fmt.Errorf("question %s: missing license or category", q.ID)
			}
			options, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("encode options of question %s: %w", q.ID, err)
			}
			var image *string
			if q.Image != "" {
				image = &q.Image
			}
			query, args := builder().
				Insert("questions").
				Columns("id", "license", "category", "prompt", "image", "options").
				Values(q.ID, q.LicenseID, q.CategoryID, q.Prompt, image, string(options)).
				Query()
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("insert question %s: %w", q.ID, err)
			}
		}
		return nil
	})
}

func (s *Storage) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
