package balala

import (
	"context"
	"fmt"
	"strconv"
)

type (
	// Client executes statements asynchronously. NewClient adapts any
	// github.com/gopsql/db connection; tests and other drivers may provide
	// their own implementation.
	Client interface {
		Query(ctx context.Context, stmt *Statement) *Future[[]Row]
		Exec(ctx context.Context, stmt *Statement) *Future[ExecResult]
		Conn(ctx context.Context) *Future[Conn]
	}

	// Conn is one reserved connection used for batches.
	Conn interface {
		SetAutoCommit(ctx context.Context, autoCommit bool) *Future[struct{}]
		Batch(ctx context.Context, stmt *Statement) *Future[[]int64]
		Close() error
	}

	// Statement is one rendered SQL statement and its parameters.
	Statement struct {
		Type  StatementType
		Table string
		SQL   string
		Args  []interface{}
		// Batch holds one parameter row per execution, for Conn.Batch.
		Batch [][]interface{}
		// Returning is set when the statement returns the generated key
		// as a row instead of through the driver's last insert id.
		Returning bool
	}

	StatementType string

	// Row is one result row, keyed by column name. []byte values are
	// converted to string.
	Row map[string]interface{}

	// ExecResult is the outcome of INSERT, UPDATE and DELETE.
	ExecResult struct {
		RowsAffected int64
		// Keys holds the generated keys of an INSERT, if any.
		Keys []interface{}
	}

	// Key is a generated primary key value.
	Key = interface{}
)

const (
	TypeSelect StatementType = "SELECT"
	TypeCount  StatementType = "COUNT"
	TypeInsert StatementType = "INSERT"
	TypeUpdate StatementType = "UPDATE"
	TypeDelete StatementType = "DELETE"
)

func (s *Statement) String() string {
	return s.SQL
}

// Int64 returns the value of column as int64.
func (r Row) Int64(column string) (int64, error) {
	return toInt64(r[column])
}

// single returns the value of a one column row.
func (r Row) single() (interface{}, bool) {
	if len(r) != 1 {
		return nil, false
	}
	for _, v := range r {
		return v, true
	}
	return nil, false
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to int64", v)
}
