package balala

import (
	"context"
	"fmt"
)

// One resolves to the first matching row, or nil when nothing matches.
// With SQLLimit on, "LIMIT ?" is added with 1 as its parameter.
func (q *Query) One(ctx context.Context) *Future[Row] {
	p, args, err := q.snapshot(true)
	if err != nil {
		return Failed[Row](err)
	}
	if q.db.useSQLLimit {
		p.IsSQLLimit = true
		args = append(args, 1)
	}
	stmt := &Statement{Type: TypeSelect, Table: p.TableName, SQL: q.db.dialect.Select(p), Args: args}
	return Then(q.db.query(ctx, stmt), firstRow)
}

// All resolves to every matching row.
func (q *Query) All(ctx context.Context) *Future[[]Row] {
	p, args, err := q.snapshot(true)
	if err != nil {
		return Failed[[]Row](err)
	}
	stmt := &Statement{Type: TypeSelect, Table: p.TableName, SQL: q.db.dialect.Select(p), Args: args}
	return q.db.query(ctx, stmt)
}

// ById resolves to the row whose primary key is id.
func (q *Query) ById(ctx context.Context, id interface{}) *Future[Row] {
	if q.info != nil {
		q.Where(q.info.PKColumn, id)
	}
	return q.One(ctx)
}

// ByIds resolves to the rows whose primary key is one of ids. No ids
// resolves to no rows without querying.
func (q *Query) ByIds(ctx context.Context, ids ...interface{}) *Future[[]Row] {
	ids = expandArgs(ids)
	if len(ids) == 0 {
		if _, _, err := q.snapshot(true); err != nil {
			return Failed[[]Row](err)
		}
		return Succeeded([]Row{})
	}
	if q.info != nil {
		q.In(q.info.PKColumn, ids...)
	}
	return q.All(ctx)
}

// Count resolves to the number of matching rows.
func (q *Query) Count(ctx context.Context) *Future[int64] {
	p, args, err := q.snapshot(true)
	if err != nil {
		return Failed[int64](err)
	}
	stmt := &Statement{Type: TypeCount, Table: p.TableName, SQL: q.db.dialect.Count(p), Args: args}
	return Then(q.db.query(ctx, stmt), countRows)
}

// Page resolves to one page of matching rows. Page numbers start at 1.
func (q *Query) Page(ctx context.Context, pageNumber, pageSize int) *Future[*Page[Row]] {
	return q.PageRow(ctx, PageRow{PageNumber: pageNumber, PageSize: pageSize})
}

// PageRow counts the matching rows first and fetches the page only when
// counting succeeded. Both statements use the same condition parameters.
func (q *Query) PageRow(ctx context.Context, row PageRow) *Future[*Page[Row]] {
	row, err := row.normalize()
	if err != nil {
		q.reset()
		return Failed[*Page[Row]](err)
	}
	p, args, err := q.snapshot(true)
	if err != nil {
		return Failed[*Page[Row]](err)
	}
	return q.page(ctx, p, args, row)
}

// PageSQL pages the rows of a raw SELECT. The order set with Order is
// applied and the parameters set with Where come before args.
func (q *Query) PageSQL(ctx context.Context, sql string, row PageRow, args ...interface{}) *Future[*Page[Row]] {
	row, err := row.normalize()
	if err != nil {
		q.reset()
		return Failed[*Page[Row]](err)
	}
	p, params, err := q.snapshot(false)
	if err != nil {
		return Failed[*Page[Row]](err)
	}
	p.CustomSQL = sql
	return q.page(ctx, p, append(params, args...), row)
}

func (q *Query) page(ctx context.Context, p *SQLParams, args []interface{}, row PageRow) *Future[*Page[Row]] {
	db := q.db
	count := &Statement{Type: TypeCount, Table: p.TableName, SQL: db.dialect.Count(p), Args: args}
	return Compose(Then(db.query(ctx, count), countRows), func(total int64) *Future[*Page[Row]] {
		paged := *p
		paged.PageRow = &row
		sql, extra := db.dialect.Paginate(&paged)
		pageArgs := make([]interface{}, 0, len(args)+len(extra))
		pageArgs = append(append(pageArgs, args...), extra...)
		stmt := &Statement{Type: TypeSelect, Table: p.TableName, SQL: sql, Args: pageArgs}
		return Then(db.query(ctx, stmt), func(rows []Row) (*Page[Row], error) {
			return NewPage(row, total, rows), nil
		})
	})
}

func firstRow(rows []Row) (Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func countRows(rows []Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	v, ok := rows[0].single()
	if !ok {
		return 0, fmt.Errorf("count returned %d columns", len(rows[0]))
	}
	return toInt64(v)
}
