package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/shoe-rental/internal/errs"
)

// Filters are equality conditions joined with AND, keyed by column name.
type Filters map[string]any

// Record maps column names to the values of a row being inserted.
type Record map[string]any

// Querier is the subset of pgxpool.Pool (and pgx.Tx) the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// buildSelect renders
//
//	SELECT <columns> FROM <table> [WHERE c1 = $1 AND c2 = $2] ORDER BY id
//
// Filter keys are sorted so the same filters always produce the same
// statement, which keeps pgx's statement cache effective.
func buildSelect(table string, columns []string, filters Filters) (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(quoteColumns(columns))
	sb.WriteString(" FROM ")
	sb.WriteString(pgx.Identifier{table}.Sanitize())

	args := make([]any, 0, len(filters))
	if len(filters) > 0 {
		keys := make([]string, 0, len(filters))
		for k := range filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		conditions := make([]string, 0, len(keys))
		for _, k := range keys {
			args = append(args, filters[k])
			conditions = append(conditions, fmt.Sprintf("%s = $%d", pgx.Identifier{k}.Sanitize(), len(args)))
		}

		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(pgx.Identifier{"id"}.Sanitize())

	return sb.String(), args
}

// buildInsert renders
//
//	INSERT INTO <table> (c1, c2) VALUES ($1, $2) RETURNING <returning>
func buildInsert(table string, record Record, returning []string) (string, []any) {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	for i, k := range keys {
		args = append(args, record[k])
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pgx.Identifier{table}.Sanitize(),
		quoteColumns(keys),
		strings.Join(placeholders, ", "),
		quoteColumns(returning),
	)

	return stmt, args
}

func quoteColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

// retrieve returns the rows of table matching every filter, ordered by id.
// T must have a `db` tag for each selected column.
func retrieve[T any](ctx context.Context, q Querier, table string, columns []string, filters Filters) ([]T, error) {
	stmt, args := buildSelect(table, columns, filters)

	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w: %w", table, errs.ErrStorage, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("collect rows from %s: %w: %w", table, errs.ErrStorage, err)
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// insert writes one record and returns the stored row as a single-element slice.
func insert[T any](ctx context.Context, q Querier, table string, record Record, returning []string) ([]T, error) {
	stmt, args := buildInsert(table, record, returning)

	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w: %w", table, errs.ErrStorage, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w: %w", table, errs.ErrStorage, err)
	}

	return items, nil
}
