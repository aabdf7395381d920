package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/dbx"
)

const table = "kv"

type SQLiteRepository struct {
	db    dbx.DBTX
	tx    dbx.TxBeginner
	clock clockwork.Clock
}

// NewSQLiteRepository binds the repository to db, which must already carry
// the kv table (see localdb.Open).
func NewSQLiteRepository(db *sql.DB, clock clockwork.Clock) *SQLiteRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SQLiteRepository{db: db, tx: db, clock: clock}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := sq.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build get kv[%s]: %w", key, err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	if err := r.upsert(ctx, r.db, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) upsert(ctx context.Context, db dbx.DBTX, key, value string) error {
	query, args, err := sq.Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, r.clock.Now().UnixMilli()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete kv[%s]: %w", key, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if err := deleteAll(ctx, r.db); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func deleteAll(ctx context.Context, db dbx.DBTX) error {
	query, args, err := sq.Delete(table).ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string]string, error) {
	query, args, err := sq.Select("key", "value").From(table).OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list kv: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

// Replace clears the table and writes pairs inside one transaction.
func (r *SQLiteRepository) Replace(ctx context.Context, pairs map[string]string) error {
	err := dbx.WithTx(ctx, r.tx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := deleteAll(ctx, tx); err != nil {
			return err
		}
		for k, v := range pairs {
			if err := r.upsert(ctx, tx, k, v); err != nil {
				return fmt.Errorf("kv[%s]: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace kv: %w", err)
	}
	return nil
}
