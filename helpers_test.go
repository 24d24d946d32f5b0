package balala

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

type (
	User struct {
		Id       int
		Username string
		Password string
		Age      *int
	}

	fakeResponse struct {
		rows   []Row
		result ExecResult
		err    error
	}

	// fakeClient records statements and answers them from queued
	// responses; futures are completed before they are returned.
	fakeClient struct {
		mu        sync.Mutex
		stmts     []*Statement
		responses []fakeResponse
		connErr   error
		conn      *fakeConn
	}

	fakeConn struct {
		autoCommit bool
		batches    []*Statement
		closed     bool
		batchErr   error
		closeErr   error
	}

	// warnLogger keeps the warnings it is given and drops the rest.
	warnLogger struct {
		mu       sync.Mutex
		warnings []string
	}
)

func newTestDB(options ...interface{}) (*DB, *fakeClient) {
	c := &fakeClient{conn: &fakeConn{}}
	return Open(c, options...), c
}

func (c *fakeClient) respond(responses ...fakeResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, responses...)
}

func (c *fakeClient) next(stmt *Statement) fakeResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stmts = append(c.stmts, stmt)
	if len(c.responses) == 0 {
		return fakeResponse{}
	}
	r := c.responses[0]
	c.responses = c.responses[1:]
	return r
}

func (c *fakeClient) Query(ctx context.Context, stmt *Statement) *Future[[]Row] {
	r := c.next(stmt)
	if r.err != nil {
		return Failed[[]Row](r.err)
	}
	return Succeeded(r.rows)
}

func (c *fakeClient) Exec(ctx context.Context, stmt *Statement) *Future[ExecResult] {
	r := c.next(stmt)
	if r.err != nil {
		return Failed[ExecResult](r.err)
	}
	return Succeeded(r.result)
}

func (c *fakeClient) Conn(ctx context.Context) *Future[Conn] {
	if c.connErr != nil {
		return Failed[Conn](c.connErr)
	}
	return Succeeded[Conn](c.conn)
}

func (c *fakeClient) last(t *testing.T) *Statement {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stmts) == 0 {
		t.Fatal("no statement was sent")
	}
	return c.stmts[len(c.stmts)-1]
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stmts)
}

func (c *fakeConn) SetAutoCommit(ctx context.Context, autoCommit bool) *Future[struct{}] {
	c.autoCommit = autoCommit
	return Succeeded(struct{}{})
}

func (c *fakeConn) Batch(ctx context.Context, stmt *Statement) *Future[[]int64] {
	c.batches = append(c.batches, stmt)
	if c.batchErr != nil {
		return Failed[[]int64](c.batchErr)
	}
	counts := make([]int64, len(stmt.Batch))
	for i := range counts {
		counts[i] = 1
	}
	return Succeeded(counts)
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

func (l *warnLogger) Debug(args ...interface{})    {}
func (l *warnLogger) Info(args ...interface{})     {}
func (l *warnLogger) Notice(args ...interface{})   {}
func (l *warnLogger) Error(args ...interface{})    {}
func (l *warnLogger) Critical(args ...interface{}) {}
func (l *warnLogger) Fatal(args ...interface{})    {}

func (l *warnLogger) Warning(args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintln(args...))
}

func (l *warnLogger) logged() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

func intPtr(i int) *int {
	return &i
}

func argsEqual(got, want []interface{}) bool {
	if len(got) == 0 && len(want) == 0 {
		return true
	}
	return reflect.DeepEqual(got, want)
}

func checkStatement(t *testing.T, stmt *Statement, wantSQL string, wantArgs []interface{}) {
	t.Helper()
	if stmt.SQL != wantSQL {
		t.Errorf("SQL = %q, want %q", stmt.SQL, wantSQL)
	}
	if !argsEqual(stmt.Args, wantArgs) {
		t.Errorf("Args = %#v, want %#v", stmt.Args, wantArgs)
	}
}
