package balala

import (
	"context"
	"sync"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
)

type (
	dbClient struct {
		conn        db.DB
		logger      logger.Logger
		middlewares []Middleware
	}

	// dbConn reserves one connection through a transaction, begun by the
	// first batch. With auto commit on, every batch is committed when it
	// succeeds and rolled back when one of its statements fails. Turning
	// auto commit on commits the pending work; Close rolls back whatever
	// is left uncommitted.
	dbConn struct {
		client     *dbClient
		mu         sync.Mutex
		tx         db.Tx
		autoCommit bool
	}
)

// NewClient creates a Client over a github.com/gopsql/db connection, for
// example one opened with github.com/gopsql/pq, github.com/gopsql/pgx or
// github.com/gopsql/standard. Options can be a logger.Logger, used for
// transaction log lines, and Middleware values wrapping every statement.
func NewClient(conn db.DB, options ...interface{}) Client {
	c := &dbClient{conn: conn}
	for _, option := range options {
		switch o := option.(type) {
		case logger.Logger:
			c.logger = o
		case Middleware:
			c.middlewares = append(c.middlewares, o)
		case []Middleware:
			c.middlewares = append(c.middlewares, o...)
		}
	}
	return c
}

func (c *dbClient) Query(ctx context.Context, stmt *Statement) *Future[[]Row] {
	f := NewFuture[[]Row]()
	handler := chain(c.query, c.middlewares)
	go func() {
		out := handler(ctx, stmt)
		if out.Err != nil {
			f.Fail(out.Err)
			return
		}
		f.Complete(out.Rows)
	}()
	return f
}

func (c *dbClient) Exec(ctx context.Context, stmt *Statement) *Future[ExecResult] {
	f := NewFuture[ExecResult]()
	handler := chain(c.exec, c.middlewares)
	go func() {
		out := handler(ctx, stmt)
		if out.Err != nil {
			f.Fail(out.Err)
			return
		}
		f.Complete(out.Result)
	}()
	return f
}

// Conn returns a connection whose transaction starts with its first batch.
func (c *dbClient) Conn(ctx context.Context) *Future[Conn] {
	if err := ctx.Err(); err != nil {
		return Failed[Conn](err)
	}
	if c.conn == nil {
		return Failed[Conn](ErrNoClient)
	}
	return Succeeded[Conn](&dbConn{client: c})
}

func (c *dbClient) query(ctx context.Context, stmt *Statement) *Outcome {
	if err := ctx.Err(); err != nil {
		return &Outcome{Err: err}
	}
	if c.conn == nil {
		return &Outcome{Err: ErrNoClient}
	}
	rows, err := c.conn.Query(stmt.SQL, stmt.Args...)
	if err != nil {
		return &Outcome{Err: err}
	}
	out, err := scanRows(rows)
	return &Outcome{Rows: out, Err: err}
}

func (c *dbClient) exec(ctx context.Context, stmt *Statement) *Outcome {
	if err := ctx.Err(); err != nil {
		return &Outcome{Err: err}
	}
	if c.conn == nil {
		return &Outcome{Err: ErrNoClient}
	}
	if stmt.Returning {
		rows, err := c.conn.Query(stmt.SQL, stmt.Args...)
		if err != nil {
			return &Outcome{Err: err}
		}
		out, err := scanRows(rows)
		if err != nil {
			return &Outcome{Err: err}
		}
		result := ExecResult{RowsAffected: int64(len(out))}
		for _, row := range out {
			if key, ok := row.single(); ok {
				result.Keys = append(result.Keys, key)
			}
		}
		return &Outcome{Result: result}
	}
	res, err := c.conn.Exec(stmt.SQL, stmt.Args...)
	if err != nil {
		return &Outcome{Err: err}
	}
	result, err := toExecResult(stmt, res)
	return &Outcome{Result: result, Err: err}
}

func toExecResult(stmt *Statement, res db.Result) (ExecResult, error) {
	var result ExecResult
	ra, err := res.RowsAffected()
	if err != nil {
		return result, err
	}
	result.RowsAffected = ra
	if stmt.Type != TypeInsert {
		return result, nil
	}
	// database/sql results know the last insert id, other drivers don't
	if li, ok := res.(interface{ LastInsertId() (int64, error) }); ok {
		if id, err := li.LastInsertId(); err == nil {
			result.Keys = []interface{}{id}
		}
	}
	return result, nil
}

func (c *dbClient) log(message string) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(message)
}

func (c *dbClient) warn(args ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Warning(args...)
}

func (conn *dbConn) begin(ctx context.Context) error {
	if conn.client.conn == nil {
		return ErrNoClient
	}
	conn.client.log("BEGIN")
	tx, err := conn.client.conn.BeginTx(ctx, "", false)
	if err != nil {
		return err
	}
	conn.tx = tx
	return nil
}

func (conn *dbConn) SetAutoCommit(ctx context.Context, autoCommit bool) *Future[struct{}] {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	conn.autoCommit = autoCommit
	if autoCommit && conn.tx != nil {
		if err := conn.commit(ctx); err != nil {
			return Failed[struct{}](err)
		}
	}
	return Succeeded(struct{}{})
}

func (conn *dbConn) Batch(ctx context.Context, stmt *Statement) *Future[[]int64] {
	f := NewFuture[[]int64]()
	handler := chain(conn.batch, conn.client.middlewares)
	go func() {
		out := handler(ctx, stmt)
		if out.Err != nil {
			f.Fail(out.Err)
			return
		}
		f.Complete(out.Counts)
	}()
	return f
}

func (conn *dbConn) batch(ctx context.Context, stmt *Statement) *Outcome {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return &Outcome{Err: err}
	}
	if conn.tx == nil {
		if err := conn.begin(ctx); err != nil {
			return &Outcome{Err: err}
		}
	}
	counts := make([]int64, 0, len(stmt.Batch))
	for _, args := range stmt.Batch {
		res, err := conn.tx.ExecContext(ctx, stmt.SQL, args...)
		if err == nil {
			var n int64
			n, err = res.RowsAffected()
			counts = append(counts, n)
		}
		if err != nil {
			if conn.autoCommit {
				if rerr := conn.rollback(ctx); rerr != nil {
					conn.client.warn("rollback failed:", rerr)
				}
			}
			return &Outcome{Err: err}
		}
	}
	if conn.autoCommit {
		if err := conn.commit(ctx); err != nil {
			return &Outcome{Err: err}
		}
	}
	return &Outcome{Counts: counts}
}

func (conn *dbConn) commit(ctx context.Context) error {
	conn.client.log("COMMIT")
	err := conn.tx.Commit(ctx)
	conn.tx = nil
	return err
}

func (conn *dbConn) rollback(ctx context.Context) error {
	conn.client.log("ROLLBACK")
	err := conn.tx.Rollback(ctx)
	conn.tx = nil
	return err
}

// Close rolls back a transaction left open by SetAutoCommit(false).
func (conn *dbConn) Close() error {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.tx != nil {
		if err := conn.rollback(context.Background()); err != nil {
			conn.client.warn("rollback failed:", err)
			return err
		}
	}
	return nil
}

func scanRows(rows db.Rows) ([]Row, error) {
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dests := make([]interface{}, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
