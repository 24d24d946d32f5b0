package balala

import (
	"context"
)

type (
	// Outcome is what a Handler returns for one statement. Rows is set for
	// SELECT and COUNT, Result for INSERT, UPDATE and DELETE, Counts for
	// batches.
	Outcome struct {
		Rows   []Row
		Result ExecResult
		Counts []int64
		Err    error
	}

	// Handler executes one statement.
	Handler func(ctx context.Context, stmt *Statement) *Outcome

	// Middleware wraps a Handler, for logging, metrics, tracing and such.
	Middleware func(next Handler) Handler
)

// chain wraps root with mws, the first middleware being the outermost.
func chain(root Handler, mws []Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		root = mws[i](root)
	}
	return root
}
