package balala

import (
	"context"
	"reflect"
)

// keyReturner is implemented by dialects that render INSERT ... RETURNING.
type keyReturner interface {
	ReturnsKeys() bool
}

// Save inserts model and resolves to its generated key, nil if the driver
// reports none. Every mapped field is inserted, nil pointers as NULL; the
// primary key is left out when it is not set so the database generates it.
func (m *Mutation) Save(ctx context.Context, model interface{}) *Future[Key] {
	rv := addressable(indirectValue(model))
	if !rv.IsValid() {
		m.reset()
		return Failed[Key](ErrFromNotSet)
	}
	s, err := m.snapshot(model)
	if err != nil {
		return Failed[Key](err)
	}
	fields := insertFields(s.info, rv)
	_, hasPK := s.info.FieldByColumn(s.info.PKColumn)
	p := &SQLParams{
		Model:         s.info,
		TableName:     s.info.TableName,
		PKName:        s.info.PKColumn,
		InsertColumns: fieldColumns(fields),
		Returning:     hasPK,
	}
	stmt := &Statement{
		Type:      TypeInsert,
		Table:     p.TableName,
		SQL:       m.db.dialect.Insert(p),
		Args:      fieldArgs(fields, rv),
		Returning: p.Returning && returnsKeys(m.db.dialect),
	}
	return Then(m.db.exec(ctx, stmt), func(res ExecResult) (Key, error) {
		if len(res.Keys) == 0 {
			return nil, nil
		}
		return res.Keys[0], nil
	})
}

// Update runs the UPDATE built with Set and Where and resolves to the
// number of affected rows. Parameters are the SET values followed by the
// WHERE values.
func (m *Mutation) Update(ctx context.Context) *Future[int64] {
	s, err := m.snapshot(nil)
	if err != nil {
		return Failed[int64](err)
	}
	if len(s.set) == 0 {
		return Failed[int64](ErrNoUpdateColumns)
	}
	p := &SQLParams{
		Model:         s.info,
		TableName:     s.info.TableName,
		UpdateColumns: s.set,
		Condition:     s.condition,
	}
	args := append(setArgs(s.set), s.params...)
	return m.db.rowsAffected(ctx, &Statement{Type: TypeUpdate, Table: p.TableName, SQL: m.db.dialect.Update(p), Args: args})
}

// UpdateById updates the row whose primary key is id.
func (m *Mutation) UpdateById(ctx context.Context, id interface{}) *Future[int64] {
	if m.info != nil {
		m.Where(m.info.PKColumn, id)
	}
	return m.Update(ctx)
}

// UpdateModel updates the table of model. The SET list comes from Set, or
// else from the set fields of model except the primary key. The WHERE
// clause comes from Where, or else from the primary key of model. Without
// either, Unconditional must be called first.
func (m *Mutation) UpdateModel(ctx context.Context, model interface{}) *Future[int64] {
	rv := addressable(indirectValue(model))
	if !rv.IsValid() {
		m.reset()
		return Failed[int64](ErrFromNotSet)
	}
	s, err := m.snapshot(model)
	if err != nil {
		return Failed[int64](err)
	}
	p := &SQLParams{
		Model:         s.info,
		TableName:     s.info.TableName,
		UpdateColumns: s.set,
		Condition:     s.condition,
	}
	var args []interface{}
	if len(s.set) > 0 {
		args = setArgs(s.set)
	} else {
		for _, cv := range columnValues(s.info, model, false) {
			if cv.Column == s.info.PKColumn {
				continue
			}
			p.ModelColumns = append(p.ModelColumns, cv.Column)
			args = append(args, cv.Value)
		}
		if len(p.ModelColumns) == 0 {
			return Failed[int64](ErrNoUpdateColumns)
		}
	}
	if s.condition != "" {
		args = append(args, s.params...)
	} else if pk, ok := pkValue(s.info, rv); ok {
		p.PKName = s.info.PKColumn
		args = append(args, pk)
	} else if !s.unconditional {
		return Failed[int64](ErrUnconditional)
	}
	return m.db.rowsAffected(ctx, &Statement{Type: TypeUpdate, Table: p.TableName, SQL: m.db.dialect.Update(p), Args: args})
}

// UpdateModelById updates the row whose primary key is id with the set
// fields of model. The id is the last parameter.
func (m *Mutation) UpdateModelById(ctx context.Context, model interface{}, id interface{}) *Future[int64] {
	info, err := m.db.meta.Model(model)
	if err != nil {
		m.setErr(err)
	} else {
		m.Where(info.PKColumn, id)
	}
	return m.UpdateModel(ctx, model)
}

// Delete runs the DELETE built with Where. Without a condition,
// Unconditional must be called first.
func (m *Mutation) Delete(ctx context.Context) *Future[int64] {
	s, err := m.snapshot(nil)
	if err != nil {
		return Failed[int64](err)
	}
	if s.condition == "" && !s.unconditional {
		return Failed[int64](ErrUnconditional)
	}
	p := &SQLParams{Model: s.info, TableName: s.info.TableName, Condition: s.condition}
	return m.db.rowsAffected(ctx, &Statement{Type: TypeDelete, Table: p.TableName, SQL: m.db.dialect.Delete(p), Args: s.params})
}

// DeleteById deletes the row whose primary key is id.
func (m *Mutation) DeleteById(ctx context.Context, id interface{}) *Future[int64] {
	if m.info != nil {
		m.Where(m.info.PKColumn, id)
	}
	return m.Delete(ctx)
}

// DeleteModel deletes from the table of model. The WHERE clause comes from
// Where, or else from the set fields of model joined with AND.
func (m *Mutation) DeleteModel(ctx context.Context, model interface{}) *Future[int64] {
	if !indirectValue(model).IsValid() {
		m.reset()
		return Failed[int64](ErrFromNotSet)
	}
	s, err := m.snapshot(model)
	if err != nil {
		return Failed[int64](err)
	}
	p := &SQLParams{Model: s.info, TableName: s.info.TableName, Condition: s.condition}
	args := s.params
	if s.condition == "" {
		for _, cv := range columnValues(s.info, model, false) {
			p.ModelColumns = append(p.ModelColumns, cv.Column)
			args = append(args, cv.Value)
		}
		if len(p.ModelColumns) == 0 && !s.unconditional {
			return Failed[int64](ErrUnconditional)
		}
	}
	return m.db.rowsAffected(ctx, &Statement{Type: TypeDelete, Table: p.TableName, SQL: m.db.dialect.Delete(p), Args: args})
}

// SaveBatch inserts a slice of models, structs or pointers to structs, on
// one reserved connection with auto commit on. The columns come from the
// first model. It resolves to the number of inserted rows.
func (m *Mutation) SaveBatch(ctx context.Context, models interface{}) *Future[int64] {
	rv := reflect.ValueOf(models)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		m.reset()
		return Failed[int64](ErrNotSlice)
	}
	if rv.Len() == 0 {
		m.reset()
		return Failed[int64](ErrEmptyBatch)
	}
	first := addressable(indirectValue(rv.Index(0).Interface()))
	if !first.IsValid() {
		m.reset()
		return Failed[int64](ErrFromNotSet)
	}
	s, err := m.snapshot(first.Type())
	if err != nil {
		return Failed[int64](err)
	}
	fields := insertFields(s.info, first)
	_, withPK := pkValue(s.info, first)
	rows := make([][]interface{}, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v := addressable(indirectValue(rv.Index(i).Interface()))
		if !v.IsValid() {
			return Failed[int64](ErrFromNotSet)
		}
		if _, ok := pkValue(s.info, v); ok != withPK {
			return Failed[int64](ErrMixedPrimaryKeys)
		}
		rows = append(rows, fieldArgs(fields, v))
	}
	p := &SQLParams{Model: s.info, TableName: s.info.TableName, InsertColumns: fieldColumns(fields)}
	stmt := &Statement{Type: TypeInsert, Table: p.TableName, SQL: m.db.dialect.Insert(p), Batch: rows}
	if err := m.db.prepare(stmt); err != nil {
		return Failed[int64](err)
	}

	out := NewFuture[int64]()
	m.db.conn(ctx).OnComplete(func(conn Conn, err error) {
		if err != nil {
			out.Fail(err)
			return
		}
		conn.SetAutoCommit(ctx, true).OnComplete(func(_ struct{}, err error) {
			if err != nil {
				m.db.closeConn(conn)
				out.Fail(err)
				return
			}
			conn.Batch(ctx, stmt).OnComplete(func(counts []int64, err error) {
				m.db.closeConn(conn)
				if err != nil {
					out.Fail(err)
					return
				}
				var total int64
				for _, n := range counts {
					total += n
				}
				out.Complete(total)
			})
		})
	})
	return out
}

func (d *DB) rowsAffected(ctx context.Context, stmt *Statement) *Future[int64] {
	return Then(d.exec(ctx, stmt), func(res ExecResult) (int64, error) {
		return res.RowsAffected, nil
	})
}

func returnsKeys(d Dialect) bool {
	r, ok := d.(keyReturner)
	return ok && r.ReturnsKeys()
}

// insertFields returns the fields an INSERT of rv writes: all of them,
// except an unset primary key.
func insertFields(info *ModelInfo, rv reflect.Value) []*FieldInfo {
	fields := make([]*FieldInfo, 0, len(info.Fields))
	for i := range info.Fields {
		f := &info.Fields[i]
		if f.ColumnName == info.PKColumn && isUnset(f.Value(rv)) {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func fieldColumns(fields []*FieldInfo) []string {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.ColumnName
	}
	return columns
}

func fieldArgs(fields []*FieldInfo, rv reflect.Value) []interface{} {
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		v := f.Value(rv)
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
			if v.IsNil() {
				continue
			}
		}
		args[i] = v.Interface()
	}
	return args
}

func pkValue(info *ModelInfo, rv reflect.Value) (interface{}, bool) {
	f, ok := info.FieldByColumn(info.PKColumn)
	if !ok {
		return nil, false
	}
	v := f.Value(rv)
	if isUnset(v) {
		return nil, false
	}
	return v.Interface(), true
}
