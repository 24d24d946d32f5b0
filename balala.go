package balala

import (
	"context"

	"github.com/gopsql/logger"
)

type (
	// DB holds the process wide settings every builder reads: the client
	// executing statements, the dialect rendering them, the table prefix
	// and whether single row queries get a LIMIT. Create it with Open.
	DB struct {
		client      Client
		dialect     Dialect
		logger      logger.Logger
		useSQLLimit bool
		meta        *Meta
	}

	// TablePrefix is added in front of derived table names, for example
	// "t_" turns User into "t_user". Pass it to Open.
	TablePrefix string

	// SQLLimit turns the single row LIMIT of One and ById on or off. It is
	// on by default. Pass it to Open.
	SQLLimit bool
)

// Open creates a DB over client. Options can be a Dialect (default is
// MySQL), a logger.Logger (e.g. logger.StandardLogger) to log every
// statement, a TablePrefix and a SQLLimit.
//
//	db := balala.Open(balala.NewClient(conn), balala.Postgres, logger.StandardLogger)
func Open(client Client, options ...interface{}) *DB {
	d := &DB{
		client:      client,
		dialect:     MySQL,
		useSQLLimit: true,
	}
	var prefix TablePrefix
	for _, option := range options {
		switch o := option.(type) {
		case Dialect:
			d.dialect = o
		case logger.Logger:
			d.logger = o
		case TablePrefix:
			prefix = o
		case SQLLimit:
			d.useSQLLimit = bool(o)
		}
	}
	d.meta = NewMeta(string(prefix))
	return d
}

// Client returns the client of the DB.
func (d *DB) Client() Client {
	return d.client
}

// Dialect returns the dialect of the DB.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Meta returns the metadata cache of the DB.
func (d *DB) Meta() *Meta {
	return d.meta
}

// Select starts a query. Columns can be column names, comma separated
// column lists or accessors; no columns means all columns.
func (d *DB) Select(columns ...interface{}) *Query {
	q := &Query{db: d, bareAt: -1}
	if len(columns) > 0 {
		q.Select(columns...)
	}
	return q
}

// From starts a query on the table of model.
func (d *DB) From(model interface{}) *Query {
	return d.Select().From(model)
}

// Insert starts a Mutation for Save and SaveBatch.
func (d *DB) Insert() *Mutation {
	return &Mutation{db: d}
}

// Update starts an UPDATE.
func (d *DB) Update() *Mutation {
	return &Mutation{db: d}
}

// Delete starts a DELETE.
func (d *DB) Delete() *Mutation {
	return &Mutation{db: d}
}

// Save inserts model and resolves to its generated key.
func (d *DB) Save(ctx context.Context, model interface{}) *Future[Key] {
	return d.Insert().Save(ctx, model)
}

// SaveBatch inserts a slice of models as one batch on one connection and
// resolves to the number of inserted rows.
func (d *DB) SaveBatch(ctx context.Context, models interface{}) *Future[int64] {
	return d.Insert().SaveBatch(ctx, models)
}

func (d *DB) log(sql string, args []interface{}) {
	if d.logger == nil {
		return
	}
	if len(args) == 0 {
		d.logger.Debug(sql)
		return
	}
	d.logger.Debug(sql, args)
}

func (d *DB) warn(args ...interface{}) {
	if d.logger == nil {
		return
	}
	d.logger.Warning(args...)
}

func (d *DB) closeConn(conn Conn) {
	if err := conn.Close(); err != nil {
		d.warn("close connection:", err)
	}
}

func (d *DB) prepare(stmt *Statement) error {
	if d.client == nil {
		return ErrNoClient
	}
	stmt.SQL = rebind(d.dialect, stmt.SQL)
	d.log(stmt.SQL, stmt.Args)
	return nil
}

func (d *DB) query(ctx context.Context, stmt *Statement) *Future[[]Row] {
	if err := d.prepare(stmt); err != nil {
		return Failed[[]Row](err)
	}
	return d.client.Query(ctx, stmt)
}

func (d *DB) exec(ctx context.Context, stmt *Statement) *Future[ExecResult] {
	if err := d.prepare(stmt); err != nil {
		return Failed[ExecResult](err)
	}
	return d.client.Exec(ctx, stmt)
}

func (d *DB) conn(ctx context.Context) *Future[Conn] {
	if d.client == nil {
		return Failed[Conn](ErrNoClient)
	}
	return d.client.Conn(ctx)
}
