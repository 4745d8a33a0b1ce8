package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// table is the generic store implementation shared by every entity. An
// entity store fills in the descriptor fields; the query paths below are
// written once. table satisfies guard.Store[T, P].
type table[T guard.Record, P any] struct {
	Base

	name     string
	columns  string // select list, matching scan order
	scanRow  func(row pgx.Row) (T, error)
	insert   func(rec T) (cols []string, vals []any)
	patch    func(p P) (cols []string, vals []any)
	sortable string          // ORDER BY clause for FindFirst/FindMany
	filters  map[string]bool // accepted where keys
	unique   []string        // keys FindUnique accepts as identifying
	touch    bool            // maintain updated_at on UPDATE
}

// buildWhere compiles a filter into a parameterized WHERE clause. Keys are
// validated against the descriptor and emitted in sorted order so generated
// SQL is deterministic. Nil values compile to IS NULL.
func (t *table[T, P]) buildWhere(where guard.Filter, argIdx int) (clause string, args []any, nextArg int, err error) {
	if len(where) == 0 {
		return "", nil, argIdx, nil
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		if !t.filters[k] {
			return "", nil, 0, models.ErrUnknownFilter(k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	for _, k := range keys {
		v := where[k]
		if v == nil {
			conditions = append(conditions, k+" IS NULL")
			continue
		}
		conditions = append(conditions, k+" = $"+strconv.Itoa(argIdx))
		args = append(args, v)
		argIdx++
	}

	return "WHERE " + strings.Join(conditions, " AND "), args, argIdx, nil
}

// hasUniqueKey reports whether the filter pins down at most one row.
func (t *table[T, P]) hasUniqueKey(where guard.Filter) bool {
	for _, k := range t.unique {
		if where.Has(k) {
			return true
		}
	}

	return false
}

// Create inserts a record and returns it as persisted (RETURNING).
func (t *table[T, P]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cols, vals := t.insert(rec)

	placeholders := make([]string, len(vals))
	for i := range vals {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.name, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.columns,
	)

	created, err := t.scanRow(t.Pool.QueryRow(ctx, query, vals...))
	if err != nil {
		if err = mapPgError(err); errors.Is(err, models.ErrDuplicateKey) {
			return zero, err
		}

		return zero, fmt.Errorf("inserting into %s: %w", t.name, err)
	}

	return created, nil
}

// Update applies a patch to the rows matching where and returns the updated
// record. An empty patch degrades to a read.
func (t *table[T, P]) Update(ctx context.Context, where guard.Filter, p P) (T, error) {
	var zero T

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	setCols, setVals := t.patch(p)
	if len(setCols) == 0 {
		return t.FindUnique(ctx, where)
	}

	setClauses := make([]string, len(setCols))
	for i, c := range setCols {
		setClauses[i] = c + " = $" + strconv.Itoa(i+1)
	}
	if t.touch {
		setClauses = append(setClauses, "updated_at = NOW()")
	}

	clause, whereArgs, _, err := t.buildWhere(where, len(setVals)+1)
	if err != nil {
		return zero, err
	}
	if clause == "" {
		return zero, fmt.Errorf("updating %s: empty where clause", t.name)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s %s RETURNING %s",
		t.name, strings.Join(setClauses, ", "), clause, t.columns,
	)

	updated, err := t.scanRow(t.Pool.QueryRow(ctx, query, append(setVals, whereArgs...)...))
	if err != nil {
		if err = mapPgError(err); errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrDuplicateKey) {
			return zero, err
		}

		return zero, fmt.Errorf("updating %s: %w", t.name, err)
	}

	return updated, nil
}

// Delete removes the row matching where and returns it as it was.
func (t *table[T, P]) Delete(ctx context.Context, where guard.Filter) (T, error) {
	var zero T

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clause, args, _, err := t.buildWhere(where, 1)
	if err != nil {
		return zero, err
	}
	if clause == "" {
		return zero, fmt.Errorf("deleting from %s: empty where clause", t.name)
	}

	query := fmt.Sprintf("DELETE FROM %s %s RETURNING %s", t.name, clause, t.columns)

	deleted, err := t.scanRow(t.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err = mapPgError(err); errors.Is(err, models.ErrNotFound) {
			return zero, err
		}

		return zero, fmt.Errorf("deleting from %s: %w", t.name, err)
	}

	return deleted, nil
}

// FindUnique returns the single record identified by where. The filter must
// contain one of the descriptor's identifying keys.
func (t *table[T, P]) FindUnique(ctx context.Context, where guard.Filter) (T, error) {
	var zero T

	if !t.hasUniqueKey(where) {
		return zero, fmt.Errorf("querying %s: filter does not identify a unique row", t.name)
	}

	return t.selectOne(ctx, where, "")
}

// FindFirst returns the first record matching where in the table's stable
// ordering.
func (t *table[T, P]) FindFirst(ctx context.Context, where guard.Filter) (T, error) {
	return t.selectOne(ctx, where, t.sortable)
}

func (t *table[T, P]) selectOne(ctx context.Context, where guard.Filter, orderBy string) (T, error) {
	var zero T

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clause, args, _, err := t.buildWhere(where, 1)
	if err != nil {
		return zero, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s", t.columns, t.name, clause)
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	query += " LIMIT 1"

	rec, err := t.scanRow(t.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err = mapPgError(err); errors.Is(err, models.ErrNotFound) {
			return zero, err
		}

		return zero, fmt.Errorf("querying %s: %w", t.name, err)
	}

	return rec, nil
}

// FindMany returns all records matching where in the table's stable ordering.
func (t *table[T, P]) FindMany(ctx context.Context, where guard.Filter) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clause, args, _, err := t.buildWhere(where, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s", t.columns, t.name, clause)
	if t.sortable != "" {
		query += " ORDER BY " + t.sortable
	}

	rows, err := t.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.name, err)
	}
	defer rows.Close()

	var recs []T
	for rows.Next() {
		rec, err := t.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", t.name, err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", t.name, err)
	}

	return recs, nil
}
