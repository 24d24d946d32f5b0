package balala

import (
	"strings"
)

type sqlserverDialect struct {
	BaseDialect
}

// SQLServer renders SQL Server statements. Row limits use OFFSET / FETCH,
// which needs an ORDER BY; "(SELECT NULL)" is used when none is given.
var SQLServer Dialect = sqlserverDialect{}

// Name returns "sqlserver".
func (sqlserverDialect) Name() string { return "sqlserver" }

// Select renders a SELECT statement with SQL Server row limiting.
func (d sqlserverDialect) Select(p *SQLParams) string {
	if !p.IsSQLLimit {
		return d.BaseDialect.Select(p)
	}
	q := *p
	q.IsSQLLimit = false
	return ensureOrder(d.BaseDialect.Select(&q), q.OrderBy) + " OFFSET 0 ROWS FETCH NEXT ? ROWS ONLY"
}

// Paginate appends "OFFSET ? ROWS FETCH NEXT ? ROWS ONLY".
func (d sqlserverDialect) Paginate(p *SQLParams) (string, []interface{}) {
	size, offset := limits(p)
	sql := ensureOrder(d.Select(p), p.OrderBy) + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY"
	return sql, []interface{}{offset, size}
}

func ensureOrder(sql, orderBy string) string {
	if orderBy != "" || strings.Contains(strings.ToUpper(sql), "ORDER BY") {
		return sql
	}
	return sql + " ORDER BY (SELECT NULL)"
}
