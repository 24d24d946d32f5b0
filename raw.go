package balala

import (
	"context"
)

// RawQuery runs a SELECT written by hand.
type RawQuery struct {
	db   *DB
	sql  string
	args []interface{}
}

// Raw returns a RawQuery for sql with "?" placeholders.
func (d *DB) Raw(sql string, args ...interface{}) *RawQuery {
	return &RawQuery{db: d, sql: sql, args: args}
}

// One resolves to the first row, nil if there is none.
func (r *RawQuery) One(ctx context.Context) *Future[Row] {
	return Then(r.All(ctx), firstRow)
}

// All resolves to every row.
func (r *RawQuery) All(ctx context.Context) *Future[[]Row] {
	return r.db.query(ctx, &Statement{Type: TypeSelect, SQL: r.sql, Args: r.args})
}

// Count resolves to the number of rows the SELECT returns.
func (r *RawQuery) Count(ctx context.Context) *Future[int64] {
	sql := r.db.dialect.Count(&SQLParams{CustomSQL: r.sql})
	return Then(r.db.query(ctx, &Statement{Type: TypeCount, SQL: sql, Args: r.args}), countRows)
}

// Page resolves to one page of the rows the SELECT returns.
func (r *RawQuery) Page(ctx context.Context, row PageRow) *Future[*Page[Row]] {
	return r.db.Select().PageSQL(ctx, r.sql, row, r.args...)
}
