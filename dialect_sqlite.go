package balala

type sqliteDialect struct {
	BaseDialect
}

// SQLite renders SQLite statements. Pages use "LIMIT ? OFFSET ?".
var SQLite Dialect = sqliteDialect{}

// Name returns "sqlite".
func (sqliteDialect) Name() string { return "sqlite" }

// Paginate appends "LIMIT ? OFFSET ?".
func (d sqliteDialect) Paginate(p *SQLParams) (string, []interface{}) {
	size, offset := limits(p)
	return d.Select(p) + " LIMIT ? OFFSET ?", []interface{}{size, offset}
}
