package balala

import (
	"reflect"
	"strings"
)

type (
	// Query accumulates a SELECT. Every terminal call (One, All, Count,
	// Page, ...) renders the accumulated state and clears it, keeping only
	// the model set by From, so a Query can be reused. A Query must not be
	// used by more than one goroutine at a time.
	Query struct {
		db   *DB
		info *ModelInfo

		selectColumns string
		selected      bool
		excluded      []string
		condition     string
		orderBy       []string
		params        []interface{}
		err           error

		// bareAt is where the last argument-less Where or Or fragment
		// starts, -1 once it has been completed or followed.
		bareAt int
	}

	// OrderBy is the direction of an ORDER BY entry.
	OrderBy string
)

const (
	ASC  OrderBy = "asc"
	DESC OrderBy = "desc"
)

// From sets the model whose table is queried.
func (q *Query) From(model interface{}) *Query {
	if model == nil {
		q.setErr(ErrFromNotSet)
		return q
	}
	info, err := q.db.meta.Model(model)
	if err != nil {
		q.setErr(err)
		return q
	}
	q.info = info
	return q
}

// Select sets the projection. It can be called only once per statement,
// the second call makes the terminal call fail with
// ErrDuplicateProjection.
func (q *Query) Select(columns ...interface{}) *Query {
	if q.selected {
		q.setErr(ErrDuplicateProjection)
		return q
	}
	q.selected = true
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		if name := q.column(c); name != "" {
			names = append(names, name)
		}
	}
	q.selectColumns = strings.Join(names, ", ")
	return q
}

// Exclude selects every column of the model except the given ones.
func (q *Query) Exclude(columns ...interface{}) *Query {
	for _, c := range columns {
		if name := q.column(c); name != "" {
			q.excluded = append(q.excluded, name)
		}
	}
	return q
}

// Where adds a condition joined with AND. Column is a statement or an
// accessor:
//
//	Where("age > ?", 18)         // age > ?
//	Where("name", "jack")        // name = ?
//	Where(UserFields.Name, "j")  // name = ?
//	Where("age").IsGt(18)        // age > ?
//	Where("deleted_at IS NULL")  // as is
func (q *Query) Where(column interface{}, args ...interface{}) *Query {
	statement := q.column(column)
	if len(args) == 1 && !strings.Contains(statement, "?") {
		statement += " = ?"
	}
	q.markBare(len(args) == 0)
	q.condition += conjunction + statement
	q.params = append(q.params, args...)
	return q
}

// And is the same as Where.
func (q *Query) And(column interface{}, args ...interface{}) *Query {
	return q.Where(column, args...)
}

// Or adds "OR (statement)". Statement follows the rules of Where.
func (q *Query) Or(column interface{}, args ...interface{}) *Query {
	statement := q.column(column)
	if len(args) == 1 && !strings.Contains(statement, "?") {
		statement += " = ?"
	}
	q.markBare(len(args) == 0)
	if q.condition == "" {
		q.condition = conjunction + "(" + statement + ")"
	} else {
		q.condition += " OR (" + statement + ")"
	}
	q.params = append(q.params, args...)
	return q
}

// WhereModel adds "column = ?" for every set field of model. Empty strings
// are skipped.
func (q *Query) WhereModel(model interface{}) *Query {
	info, err := q.db.meta.Model(model)
	if err != nil {
		q.setErr(err)
		return q
	}
	q.markBare(false)
	for _, cv := range columnValues(info, model, true) {
		q.condition += conjunction + cv.Column + " = ?"
		q.params = append(q.params, cv.Value)
	}
	return q
}

// NotEq adds "column != ?".
func (q *Query) NotEq(column interface{}, value interface{}) *Query {
	return q.compare(column, " != ?", value)
}

// Like adds "column LIKE ?".
func (q *Query) Like(column interface{}, value interface{}) *Query {
	return q.compare(column, " LIKE ?", value)
}

// Gt adds "column > ?".
func (q *Query) Gt(column interface{}, value interface{}) *Query {
	return q.compare(column, " > ?", value)
}

// Gte adds "column >= ?".
func (q *Query) Gte(column interface{}, value interface{}) *Query {
	return q.compare(column, " >= ?", value)
}

// Lt adds "column < ?".
func (q *Query) Lt(column interface{}, value interface{}) *Query {
	return q.compare(column, " < ?", value)
}

// Lte adds "column <= ?".
func (q *Query) Lte(column interface{}, value interface{}) *Query {
	return q.compare(column, " <= ?", value)
}

// Between adds "column BETWEEN ? AND ?".
func (q *Query) Between(column interface{}, a, b interface{}) *Query {
	q.markBare(false)
	q.condition += conjunction + q.column(column) + " BETWEEN ? AND ?"
	q.params = append(q.params, a, b)
	return q
}

// NotNull adds "column IS NOT NULL".
func (q *Query) NotNull(column interface{}) *Query {
	q.markBare(false)
	q.condition += conjunction + q.column(column) + " IS NOT NULL"
	return q
}

// NotEmpty adds "column != ''".
func (q *Query) NotEmpty(column interface{}) *Query {
	q.markBare(false)
	q.condition += conjunction + q.column(column) + " != ''"
	return q
}

// In adds "column IN (?, ...)". A single slice argument is expanded. An
// empty list is logged as a warning and adds nothing.
func (q *Query) In(column interface{}, args ...interface{}) *Query {
	args = expandArgs(args)
	name := q.column(column)
	q.markBare(false)
	if len(args) == 0 {
		q.db.warn("column " + name + " IN () has no values, condition skipped")
		return q
	}
	q.condition += conjunction + name + " IN (" + placeholders(len(args)) + ")"
	q.params = append(q.params, args...)
	return q
}

// IsEq completes a bare Where(column) with " = ?".
func (q *Query) IsEq(value interface{}) *Query {
	return q.suffix(" = ?", value)
}

// IsNotEq completes a bare Where(column) with " != ?".
func (q *Query) IsNotEq(value interface{}) *Query {
	return q.suffix(" != ?", value)
}

// IsLike completes a bare Where(column) with " LIKE ?".
func (q *Query) IsLike(value interface{}) *Query {
	return q.suffix(" LIKE ?", value)
}

// IsGt completes a bare Where(column) with " > ?".
func (q *Query) IsGt(value interface{}) *Query {
	return q.suffix(" > ?", value)
}

// IsGte completes a bare Where(column) with " >= ?".
func (q *Query) IsGte(value interface{}) *Query {
	return q.suffix(" >= ?", value)
}

// IsLt completes a bare Where(column) with " < ?".
func (q *Query) IsLt(value interface{}) *Query {
	return q.suffix(" < ?", value)
}

// IsLte completes a bare Where(column) with " <= ?".
func (q *Query) IsLte(value interface{}) *Query {
	return q.suffix(" <= ?", value)
}

// IsBetween completes a bare Where(column) with " BETWEEN ? AND ?".
func (q *Query) IsBetween(a, b interface{}) *Query {
	return q.suffix(" BETWEEN ? AND ?", a, b)
}

// IsNotNull completes a bare Where(column) with " IS NOT NULL".
func (q *Query) IsNotNull() *Query {
	return q.suffix(" IS NOT NULL")
}

// IsNotEmpty completes a bare Where(column) with " != ''".
func (q *Query) IsNotEmpty() *Query {
	return q.suffix(" != ''")
}

// IsIn completes a bare Where(column) with " IN (?, ...)". An empty list is
// logged as a warning and drops the bare column again.
func (q *Query) IsIn(values ...interface{}) *Query {
	values = expandArgs(values)
	if len(values) == 0 {
		if q.bareAt >= 0 {
			q.condition = q.condition[:q.bareAt]
			q.bareAt = -1
		}
		q.db.warn("IN () has no values, condition skipped")
		return q
	}
	return q.suffix(" IN ("+placeholders(len(values))+")", values...)
}

// Order adds an ORDER BY entry, either "created_at desc" or a column and
// a direction:
//
//	Order("id desc").Order(UserFields.Name, balala.ASC)
func (q *Query) Order(column interface{}, direction ...OrderBy) *Query {
	order := q.column(column)
	if order == "" {
		return q
	}
	if len(direction) > 0 && direction[0] != "" {
		order += " " + string(direction[0])
	}
	q.orderBy = append(q.orderBy, order)
	return q
}

// Err returns the first error recorded while building, if any.
func (q *Query) Err() error {
	return q.err
}

func (q *Query) compare(column interface{}, operator string, value interface{}) *Query {
	q.markBare(false)
	q.condition += conjunction + q.column(column) + operator
	q.params = append(q.params, value)
	return q
}

func (q *Query) suffix(operator string, values ...interface{}) *Query {
	q.markBare(false)
	q.condition += operator
	q.params = append(q.params, values...)
	return q
}

// markBare records whether the fragment about to be appended is a bare
// column waiting for an Is* operator.
func (q *Query) markBare(bare bool) {
	if bare {
		q.bareAt = len(q.condition)
	} else {
		q.bareAt = -1
	}
}

func (q *Query) column(column interface{}) string {
	name, err := q.db.meta.Column(column)
	if err != nil {
		q.setErr(err)
	}
	return name
}

func (q *Query) setErr(err error) {
	if q.err == nil {
		q.err = err
	}
}

// snapshot renders the builder state into parameters and clears the state.
func (q *Query) snapshot(requireModel bool) (*SQLParams, []interface{}, error) {
	defer q.reset()
	if q.err != nil {
		return nil, nil, q.err
	}
	p := &SQLParams{
		SelectColumns:   q.selectColumns,
		ExcludedColumns: q.excluded,
		Condition:       q.condition,
		OrderBy:         strings.Join(q.orderBy, ", "),
	}
	if q.info != nil {
		p.Model = q.info
		p.TableName = q.info.TableName
		p.PKName = q.info.PKColumn
	} else if requireModel {
		return nil, nil, ErrFromNotSet
	}
	return p, q.params, nil
}

func (q *Query) reset() {
	q.selectColumns = ""
	q.selected = false
	q.excluded = nil
	q.condition = ""
	q.orderBy = nil
	q.params = nil
	q.err = nil
	q.bareAt = -1
}

type columnValue struct {
	Column string
	Value  interface{}
}

// columnValues returns the set fields of model in declaration order.
func columnValues(info *ModelInfo, model interface{}, skipEmptyString bool) []columnValue {
	rv := addressable(indirectValue(model))
	if !rv.IsValid() || rv.Type() != info.Type {
		return nil
	}
	var out []columnValue
	for i := range info.Fields {
		f := &info.Fields[i]
		v := f.Value(rv)
		if isUnset(v) || (skipEmptyString && isEmptyString(v)) {
			continue
		}
		out = append(out, columnValue{Column: f.ColumnName, Value: v.Interface()})
	}
	return out
}

// addressable returns rv or an addressable copy of it.
func addressable(rv reflect.Value) reflect.Value {
	if !rv.IsValid() || rv.CanAddr() {
		return rv
	}
	c := reflect.New(rv.Type()).Elem()
	c.Set(rv)
	return c
}
