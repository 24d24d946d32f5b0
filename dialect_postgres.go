package balala

import (
	"github.com/Masterminds/squirrel"
)

type postgresDialect struct {
	BaseDialect
}

// Postgres renders PostgreSQL statements. Placeholders are rewritten to
// $1, $2, ... and a single row INSERT returns its primary key.
var Postgres Dialect = postgresDialect{}

// Name returns "postgres".
func (postgresDialect) Name() string { return "postgres" }

// Insert renders an INSERT statement with a RETURNING clause.
func (d postgresDialect) Insert(p *SQLParams) string {
	sql := d.BaseDialect.Insert(p)
	if p.Returning && p.PKName != "" {
		sql += " RETURNING " + p.PKName
	}
	return sql
}

// ReturnsKeys reports that INSERT statements return the primary key.
func (postgresDialect) ReturnsKeys() bool { return true }

// Paginate appends "LIMIT ? OFFSET ?".
func (d postgresDialect) Paginate(p *SQLParams) (string, []interface{}) {
	size, offset := limits(p)
	return d.Select(p) + " LIMIT ? OFFSET ?", []interface{}{size, offset}
}

// Rebind replaces "?" placeholders with $1, $2 and so on.
func (postgresDialect) Rebind(sql string) string {
	out, err := squirrel.Dollar.ReplacePlaceholders(sql)
	if err != nil {
		return sql
	}
	return out
}
