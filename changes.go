package balala

import (
	"time"
)

// RawChanges maps struct field names to new values.
type RawChanges map[string]interface{}

// SetChanges adds a Set for every entry of changes naming a field of the
// model set by From, in field declaration order. Other keys are ignored.
//
//	db.Update().From(User{}).SetChanges(balala.RawChanges{"Username": "bob"}).UpdateById(ctx, 1)
func (m *Mutation) SetChanges(changes RawChanges) *Mutation {
	if m.info == nil {
		m.setErr(ErrFromNotSet)
		return m
	}
	for _, f := range m.info.Fields {
		if value, ok := changes[f.Name]; ok {
			m.Set(f.ColumnName, value)
		}
	}
	return m
}

// SetUpdatedAt sets the UpdatedAt field to the current UTC time if the
// model has one.
func (m *Mutation) SetUpdatedAt() *Mutation {
	return m.SetChanges(RawChanges{"UpdatedAt": time.Now().UTC()})
}
