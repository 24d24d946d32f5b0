package balala

import (
	"strings"
)

type (
	// Dialect renders SQL text from statement parameters. Every value is
	// written as a "?" placeholder; Paginate also returns the values of
	// the placeholders it adds, which follow the predicate values.
	Dialect interface {
		Name() string
		Select(p *SQLParams) string
		Count(p *SQLParams) string
		Insert(p *SQLParams) string
		Update(p *SQLParams) string
		Delete(p *SQLParams) string
		Paginate(p *SQLParams) (string, []interface{})
	}

	// Rebinder is implemented by dialects whose drivers do not accept "?"
	// placeholders. Rebind is applied to every rendered statement.
	Rebinder interface {
		Rebind(sql string) string
	}

	// BaseDialect renders the portable forms of SELECT, COUNT, INSERT,
	// UPDATE and DELETE. Concrete dialects embed it and add Paginate.
	BaseDialect struct{}
)

const conjunction = " AND "

func stripConjunction(fragment string) string {
	if len(fragment) <= len(conjunction) {
		return ""
	}
	return fragment[len(conjunction):]
}

// Select renders a SELECT statement without paging.
func (BaseDialect) Select(p *SQLParams) string {
	var sql strings.Builder
	if p.CustomSQL != "" {
		sql.WriteString(p.CustomSQL)
	} else {
		sql.WriteString("SELECT ")
		sql.WriteString(projection(p))
		sql.WriteString(" FROM ")
		sql.WriteString(p.TableName)
		if cond := p.condition(); cond != "" {
			sql.WriteString(" WHERE ")
			sql.WriteString(cond)
		}
	}
	if p.OrderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(p.OrderBy)
	}
	if p.IsSQLLimit {
		sql.WriteString(" LIMIT ?")
	}
	return sql.String()
}

// Count renders a SELECT COUNT(*) statement for the conditions of p.
func (BaseDialect) Count(p *SQLParams) string {
	if p.CustomSQL != "" {
		return "SELECT COUNT(*) FROM (" + p.CustomSQL + ") tmp"
	}
	sql := "SELECT COUNT(*) FROM " + p.TableName
	if cond := p.condition(); cond != "" {
		sql += " WHERE " + cond
	}
	return sql
}

// Insert renders an INSERT statement for the columns of p.
func (BaseDialect) Insert(p *SQLParams) string {
	return "INSERT INTO " + p.TableName + " (" + strings.Join(p.InsertColumns, ", ") +
		") VALUES (" + placeholders(len(p.InsertColumns)) + ")"
}

// Update renders an UPDATE statement from the SET list of p.
func (BaseDialect) Update(p *SQLParams) string {
	var sets []string
	if len(p.UpdateColumns) > 0 {
		for _, c := range p.UpdateColumns {
			if expr, ok := c.Value.(String); ok {
				sets = append(sets, c.Column+" = "+string(expr))
			} else {
				sets = append(sets, c.Column+" = ?")
			}
		}
	} else {
		for _, column := range p.ModelColumns {
			sets = append(sets, column+" = ?")
		}
	}
	sql := "UPDATE " + p.TableName + " SET " + strings.Join(sets, ", ")
	if cond := p.condition(); cond != "" {
		sql += " WHERE " + cond
	} else if p.PKName != "" {
		sql += " WHERE " + p.PKName + " = ?"
	}
	return sql
}

// Delete renders a DELETE statement for the conditions of p.
func (BaseDialect) Delete(p *SQLParams) string {
	sql := "DELETE FROM " + p.TableName
	if cond := p.condition(); cond != "" {
		sql += " WHERE " + cond
	} else if len(p.ModelColumns) > 0 {
		sql += " WHERE " + strings.Join(p.ModelColumns, " = ? AND ") + " = ?"
	}
	return sql
}

func projection(p *SQLParams) string {
	if p.SelectColumns != "" {
		return p.SelectColumns
	}
	if len(p.ExcludedColumns) == 0 || p.Model == nil {
		return "*"
	}
	excluded := map[string]bool{}
	for _, c := range p.ExcludedColumns {
		excluded[c] = true
	}
	var columns []string
	for _, c := range p.Model.ColumnNames() {
		if !excluded[c] {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return "*"
	}
	return strings.Join(columns, ", ")
}

// limits returns the page size and the number of rows to skip.
func limits(p *SQLParams) (size, offset int) {
	if p.PageRow == nil {
		return 0, 0
	}
	return p.PageRow.PageSize, p.PageRow.Offset()
}

// DialectByName returns the dialect for a dialect or driver name, nil if
// the name is unknown.
func DialectByName(name string) Dialect {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return MySQL
	case "postgres", "postgresql", "pgx", "pq":
		return Postgres
	case "sqlite", "sqlite3":
		return SQLite
	case "sqlserver", "mssql":
		return SQLServer
	case "oracle", "godror", "oci8":
		return Oracle
	}
	return nil
}

// rebind applies the dialect's placeholder format to sql.
func rebind(d Dialect, sql string) string {
	if r, ok := d.(Rebinder); ok {
		return r.Rebind(sql)
	}
	return sql
}
