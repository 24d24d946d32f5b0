package balala

type mysqlDialect struct {
	BaseDialect
}

// MySQL renders MySQL and MariaDB statements. Pages use "LIMIT ?, ?".
var MySQL Dialect = mysqlDialect{}

// Name returns "mysql".
func (mysqlDialect) Name() string { return "mysql" }

// Paginate appends "LIMIT ?, ?" with the offset first.
func (d mysqlDialect) Paginate(p *SQLParams) (string, []interface{}) {
	size, offset := limits(p)
	return d.Select(p) + " LIMIT ?, ?", []interface{}{offset, size}
}
