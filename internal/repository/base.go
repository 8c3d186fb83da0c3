package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"shortly/internal/database"
)

// Fields maps column names to values for inserts and updates.
type Fields map[string]any

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Schema describes how an entity maps onto its table.
type Schema[T any] struct {
	Table    string
	Columns  []string // selected columns, in Scan order; must include "id"
	Writable []string // columns accepted by Create/Update
	Scan     func(row RowScanner) (T, error)
}

// Base implements the CRUD and bulk operations shared by every entity.
// All methods take the query executor explicitly; open it with
// database.Store.InTx or Store.Read.
type Base[T any] struct {
	schema     Schema[T]
	selectList string
	columns    map[string]struct{}
	writable   map[string]struct{}
}

// NewBase builds a Base for schema.
func NewBase[T any](schema Schema[T]) *Base[T] {
	b := &Base[T]{
		schema:     schema,
		selectList: strings.Join(schema.Columns, ", "),
		columns:    make(map[string]struct{}, len(schema.Columns)),
		writable:   make(map[string]struct{}, len(schema.Writable)),
	}
	for _, c := range schema.Columns {
		b.columns[c] = struct{}{}
	}
	for _, c := range schema.Writable {
		b.writable[c] = struct{}{}
	}
	return b
}

// SelectList is the comma separated column list for hand written queries.
func (b *Base[T]) SelectList() string {
	return b.selectList
}

// GetByID returns the row with id or ErrNotFound.
func (b *Base[T]) GetByID(ctx context.Context, q database.DBTX, id int64) (T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", b.selectList, b.schema.Table)
	entity, err := b.schema.Scan(q.QueryRowContext(ctx, query, id))
	return entity, classify("get "+b.schema.Table, err)
}

// GetAll returns a page of rows matching filter, ordered by orders (id
// ascending when none are given).
func (b *Base[T]) GetAll(ctx context.Context, q database.DBTX, page Page, filter Filter, orders ...Order) ([]T, error) {
	page = page.normalized()

	where, args, err := filter.build(b.columns, 0)
	if err != nil {
		return nil, err
	}
	orderBy, err := buildOrder(orders, b.columns)
	if err != nil {
		return nil, err
	}

	args = append(args, page.Limit, page.Skip)
	query := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
		b.selectList, b.schema.Table, where, orderBy, len(args)-1, len(args))

	return b.Query(ctx, q, "list "+b.schema.Table, query, args...)
}

// Query runs a SELECT whose columns match the schema and scans every row.
func (b *Base[T]) Query(ctx context.Context, q database.DBTX, op, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		entity, err := b.schema.Scan(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// Create inserts one row and returns it as stored.
func (b *Base[T]) Create(ctx context.Context, q database.DBTX, fields Fields) (T, error) {
	var zero T

	cols, err := b.writableColumns(fields)
	if err != nil {
		return zero, err
	}
	if len(cols) == 0 {
		return zero, fmt.Errorf("%w: no fields to insert", ErrInvalidFilter)
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		b.schema.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), b.selectList)

	entity, err := b.schema.Scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, classify("create "+b.schema.Table, err)
	}
	return entity, nil
}

// Update applies fields to the row with id and returns the updated row.
// An empty field set returns the current row.
func (b *Base[T]) Update(ctx context.Context, q database.DBTX, id int64, fields Fields) (T, error) {
	var zero T

	cols, err := b.writableColumns(fields)
	if err != nil {
		return zero, err
	}
	if len(cols) == 0 {
		return b.GetByID(ctx, q, id)
	}

	sets, args := setClause(cols, fields, 0)
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		b.schema.Table, sets, len(args), b.selectList)

	entity, err := b.schema.Scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, classify("update "+b.schema.Table, err)
	}
	return entity, nil
}

// Delete removes the row with id and reports whether it existed.
func (b *Base[T]) Delete(ctx context.Context, q database.DBTX, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", b.schema.Table)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return false, classify("delete "+b.schema.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classify("delete "+b.schema.Table, err)
	}
	return n > 0, nil
}

// BulkCreate inserts all rows with one multi-row INSERT. Every element must
// set the same columns.
func (b *Base[T]) BulkCreate(ctx context.Context, q database.DBTX, rows []Fields) ([]T, error) {
	if len(rows) == 0 {
		return []T{}, nil
	}

	cols, err := b.writableColumns(rows[0])
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no fields to insert", ErrInvalidFilter)
	}

	tuples := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*len(cols))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("%w: row %d sets %d columns, expected %d", ErrInvalidFilter, i, len(row), len(cols))
		}
		placeholders := make([]string, len(cols))
		for j, c := range cols {
			v, ok := row[c]
			if !ok {
				return nil, fmt.Errorf("%w: row %d is missing column %q", ErrInvalidFilter, i, c)
			}
			args = append(args, v)
			placeholders[j] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING %s",
		b.schema.Table, strings.Join(cols, ", "), strings.Join(tuples, ", "), b.selectList)

	return b.Query(ctx, q, "bulk create "+b.schema.Table, query, args...)
}

// BulkUpdate applies fields to every row matching filter. An empty filter
// is rejected so a missing condition can never rewrite the whole table.
func (b *Base[T]) BulkUpdate(ctx context.Context, q database.DBTX, filter Filter, fields Fields) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("%w: bulk update requires a filter", ErrInvalidFilter)
	}
	cols, err := b.writableColumns(fields)
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, nil
	}

	sets, args := setClause(cols, fields, 0)
	where, whereArgs, err := filter.build(b.columns, len(args))
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", b.schema.Table, sets, where)
	return b.exec(ctx, q, "bulk update "+b.schema.Table, query, args...)
}

// BulkDelete removes every row matching filter. An empty filter is rejected.
func (b *Base[T]) BulkDelete(ctx context.Context, q database.DBTX, filter Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("%w: bulk delete requires a filter", ErrInvalidFilter)
	}
	where, args, err := filter.build(b.columns, 0)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s%s", b.schema.Table, where)
	return b.exec(ctx, q, "bulk delete "+b.schema.Table, query, args...)
}

// Exists reports whether any row matches filter.
func (b *Base[T]) Exists(ctx context.Context, q database.DBTX, filter Filter) (bool, error) {
	where, args, err := filter.build(b.columns, 0)
	if err != nil {
		return false, err
	}

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s%s)", b.schema.Table, where)
	if err := q.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, classify("exists "+b.schema.Table, err)
	}
	return exists, nil
}

// Count returns the number of rows matching filter.
func (b *Base[T]) Count(ctx context.Context, q database.DBTX, filter Filter) (int64, error) {
	where, args, err := filter.build(b.columns, 0)
	if err != nil {
		return 0, err
	}

	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.schema.Table, where)
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify("count "+b.schema.Table, err)
	}
	return n, nil
}

func (b *Base[T]) exec(ctx context.Context, q database.DBTX, op, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}

// writableColumns validates the keys of fields and returns them sorted so
// generated SQL is deterministic.
func (b *Base[T]) writableColumns(fields Fields) ([]string, error) {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		if _, ok := b.writable[c]; !ok {
			return nil, fmt.Errorf("%w: column %q is not writable on %s", ErrInvalidFilter, c, b.schema.Table)
		}
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols, nil
}

func setClause(cols []string, fields Fields, argOffset int) (string, []any) {
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = fields[c]
		parts[i] = fmt.Sprintf("%s = $%d", c, argOffset+i+1)
	}
	return strings.Join(parts, ", "), args
}
