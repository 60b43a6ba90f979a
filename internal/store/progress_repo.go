package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo on the progress table.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Get(ctx context.Context, scope Scope) ([]byte, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table("progress")).
		Where(entsql.EQ("key", scope.Key())).
		Query()

	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query progress %s: %w", scope, err)
	}
	return []byte(data), nil
}

func (r *progressRepo) Put(ctx context.Context, scope Scope, data []byte) error {
	query, args := builder().
		Insert("progress").
		Columns("key", "data", "updated_at").
		Values(scope.Key(), string(data), time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress %s: %w", scope, err)
	}
	return nil
}

func (r *progressRepo) Delete(ctx context.Context, scope Scope) error {
	query, args := builder().
		Delete("progress").
		Where(entsql.EQ("key", scope.Key())).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress %s: %w", scope, err)
	}
	return nil
}
