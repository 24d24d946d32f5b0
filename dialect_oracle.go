package balala

type oracleDialect struct {
	BaseDialect
}

// Oracle renders Oracle 12c+ statements. Pages are cut with a ROW_NUMBER()
// window over the unordered query.
var Oracle Dialect = oracleDialect{}

// Name returns "oracle".
func (oracleDialect) Name() string { return "oracle" }

// Select renders a SELECT statement with Oracle row limiting.
func (d oracleDialect) Select(p *SQLParams) string {
	if !p.IsSQLLimit {
		return d.BaseDialect.Select(p)
	}
	q := *p
	q.IsSQLLimit = false
	return d.BaseDialect.Select(&q) + " FETCH FIRST ? ROWS ONLY"
}

// Paginate wraps the query in a ROW_NUMBER() window and filters on it.
func (d oracleDialect) Paginate(p *SQLParams) (string, []interface{}) {
	size, offset := limits(p)
	q := *p
	q.OrderBy = ""
	q.IsSQLLimit = false
	order := p.OrderBy
	if order == "" {
		order = "NULL"
	}
	sql := "SELECT * FROM (SELECT t.*, ROW_NUMBER() OVER (ORDER BY " + order + ") row_num FROM (" +
		d.BaseDialect.Select(&q) + ") t) WHERE row_num > ? AND row_num <= ? ORDER BY row_num"
	return sql, []interface{}{offset, offset + size}
}
