package balala

import (
	"strings"
)

// Mutation accumulates an UPDATE or DELETE and runs INSERTs. Like Query,
// every terminal call clears the accumulated state except the model set by
// From. A Mutation must not be used by more than one goroutine at a time.
type Mutation struct {
	db   *DB
	info *ModelInfo

	set           []SetColumn
	condition     string
	params        []interface{}
	unconditional bool
	err           error
}

// From sets the model whose table is changed.
func (m *Mutation) From(model interface{}) *Mutation {
	if model == nil {
		m.setErr(ErrFromNotSet)
		return m
	}
	info, err := m.db.meta.Model(model)
	if err != nil {
		m.setErr(err)
		return m
	}
	m.info = info
	return m
}

// Set adds "column = ?" to the SET list. Setting a column again replaces
// its value and keeps its position. A String value is written as is.
func (m *Mutation) Set(column interface{}, value interface{}) *Mutation {
	name, err := m.db.meta.Column(column)
	if err != nil {
		m.setErr(err)
		return m
	}
	for i := range m.set {
		if m.set[i].Column == name {
			m.set[i].Value = value
			return m
		}
	}
	m.set = append(m.set, SetColumn{Column: name, Value: value})
	return m
}

// Where adds a condition joined with AND, following the rules of
// Query.Where.
func (m *Mutation) Where(column interface{}, args ...interface{}) *Mutation {
	statement, err := m.db.meta.Column(column)
	if err != nil {
		m.setErr(err)
	}
	if len(args) == 1 && !strings.Contains(statement, "?") {
		statement += " = ?"
	}
	m.condition += conjunction + statement
	m.params = append(m.params, args...)
	return m
}

// And is the same as Where.
func (m *Mutation) And(column interface{}, args ...interface{}) *Mutation {
	return m.Where(column, args...)
}

// In adds "column IN (?, ...)". An empty list is logged as a warning and
// adds nothing.
func (m *Mutation) In(column interface{}, args ...interface{}) *Mutation {
	args = expandArgs(args)
	name, err := m.db.meta.Column(column)
	if err != nil {
		m.setErr(err)
	}
	if len(args) == 0 {
		m.db.warn("column " + name + " IN () has no values, condition skipped")
		return m
	}
	m.condition += conjunction + name + " IN (" + placeholders(len(args)) + ")"
	m.params = append(m.params, args...)
	return m
}

// Unconditional allows UpdateModel, DeleteModel and Delete to run
// without a WHERE clause.
func (m *Mutation) Unconditional() *Mutation {
	m.unconditional = true
	return m
}

// Err returns the first error recorded while building, if any.
func (m *Mutation) Err() error {
	return m.err
}

func (m *Mutation) setErr(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *Mutation) reset() {
	m.set = nil
	m.condition = ""
	m.params = nil
	m.unconditional = false
	m.err = nil
}

type mutationState struct {
	info          *ModelInfo
	set           []SetColumn
	condition     string
	params        []interface{}
	unconditional bool
}

// snapshot takes the builder state and clears it. model, when not nil,
// replaces the model set by From for this statement.
func (m *Mutation) snapshot(model interface{}) (*mutationState, error) {
	defer m.reset()
	if m.err != nil {
		return nil, m.err
	}
	s := &mutationState{
		info:          m.info,
		set:           m.set,
		condition:     m.condition,
		params:        m.params,
		unconditional: m.unconditional,
	}
	if model != nil {
		info, err := m.db.meta.Model(model)
		if err != nil {
			return nil, err
		}
		s.info = info
	}
	if s.info == nil {
		return nil, ErrFromNotSet
	}
	return s, nil
}

// setArgs returns the parameters of the SET list, String values take none.
func setArgs(set []SetColumn) []interface{} {
	args := make([]interface{}, 0, len(set))
	for _, c := range set {
		if _, ok := c.Value.(String); ok {
			continue
		}
		args = append(args, c.Value)
	}
	return args
}
