// Package database is the single place raw SQL reaches the store.
//
// Every call checks a connection out of the gorm pool under a bounded
// context, runs exactly one statement with positional parameters and hands
// the connection back before returning, whether the statement failed or not.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

const DefaultAcquireTimeout = 10 * time.Second

type (
	Gateway interface {
		Read(ctx context.Context, query string, args ...any) ([]Row, error)
		ReadOne(ctx context.Context, query string, args ...any) (Row, error)
		Write(ctx context.Context, query string, args ...any) (int64, error)
	}

	gateway struct {
		db             *gorm.DB
		acquireTimeout time.Duration
	}
)

func NewGateway(db *gorm.DB, acquireTimeout time.Duration) Gateway {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &gateway{db: db, acquireTimeout: acquireTimeout}
}

// Read returns all rows in the order the store produced them. No rows is an
// empty slice, not an error.
func (g *gateway) Read(ctx context.Context, query string, args ...any) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, g.acquireTimeout)
	defer cancel()

	rows, err := g.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows, -1)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	log.Debugw("db read", "rows", len(result))
	return result, nil
}

// ReadOne returns the first row, or nil when the query matched nothing.
func (g *gateway) ReadOne(ctx context.Context, query string, args ...any) (Row, error) {
	ctx, cancel := context.WithTimeout(ctx, g.acquireTimeout)
	defer cancel()

	rows, err := g.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("read one: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows, 1)
	if err != nil {
		return nil, fmt.Errorf("read one: %w", err)
	}

	log.Debugw("db read one", "found", len(result) == 1)
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// Write executes one statement in autocommit mode and reports the number of
// affected rows.
func (g *gateway) Write(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, g.acquireTimeout)
	defer cancel()

	res := g.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, fmt.Errorf("write: %w", res.Error)
	}

	log.Debugw("db write", "affected", res.RowsAffected)
	return res.RowsAffected, nil
}

// Placeholders renders n positional placeholders for an IN list. Only the
// count is interpolated into the query; values are always bound.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func scanRows(rows *sql.Rows, max int) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		result = append(result, row)

		if max > 0 && len(result) == max {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
