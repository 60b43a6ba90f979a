package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/sbfquiz/internal/question"
)

// QuestionRepo is the local question bank.
type QuestionRepo struct {
	db *sql.DB
}

// Questions returns the questions of a license category in insertion
// order. An empty licenseID or categoryID matches everything.
func (r *QuestionRepo) Questions(ctx context.Context, licenseID, categoryID string) ([]question.Question, error) {
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

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var (
			q       question.Question
			image   sql.NullString
			options string
		)
		if err := rows.Scan(&q.ID, &q.LicenseID, &q.CategoryID, &q.Prompt, &image, &options); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Image = image.String
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
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
// Every question must carry its license and category.
func (r *QuestionRepo) ReplaceAll(ctx context.Context, qs []question.Question) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query, args := builder().Delete("questions").Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	for i := range qs {
		q := &qs[i]
		if q.LicenseID == "" || q.CategoryID == "" {
			return fmt.Errorf("question %s: missing license or category", q.ID)
		}
		options, mErr := json.Marshal(q.Options)
		if mErr != nil {
			return fmt.Errorf("encode options of question %s: %w", q.ID, mErr)
		}
		var image any
		if q.Image != "" {
			image = q.Image
		}
		query, args := builder().
			Insert("questions").
			Columns("id", "license", "category", "prompt", "image", "options").
			Values(q.ID, q.LicenseID, q.CategoryID, q.Prompt, image, string(options)).
			Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Count returns the number of questions in a license category; empty
// filters match everything.
func (r *QuestionRepo) Count(ctx context.Context, licenseID, categoryID string) (int, error) {
	sel := builder().
		Select(entsql.Count("*")).
		From(entsql.Table("questions"))
	if licenseID != "" {
		sel.Where(entsql.EQ("license", licenseID))
	}
	if categoryID != "" {
		sel.Where(entsql.EQ("category", categoryID))
	}
	query, args := sel.Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}
