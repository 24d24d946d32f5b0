package balala

import (
	"context"
)

// ModelRef runs statements for one model value. Every call builds a fresh
// builder, so a ModelRef can be shared between goroutines.
//
//	db.Model(&user).Save(ctx)
//	db.Model(&user).Set("age", 20).UpdateModel(ctx, &user)
type ModelRef struct {
	db    *DB
	model interface{}
}

// Model returns a ModelRef for model, a struct or a pointer to struct.
func (d *DB) Model(model interface{}) *ModelRef {
	return &ModelRef{db: d, model: model}
}

// Save inserts the model and resolves to its generated key.
func (r *ModelRef) Save(ctx context.Context) *Future[Key] {
	return r.db.Insert().Save(ctx, r.model)
}

// Update updates the set fields of the model, matched by primary key.
func (r *ModelRef) Update(ctx context.Context) *Future[int64] {
	return r.db.Update().UpdateModel(ctx, r.model)
}

// UpdateById updates the row whose primary key is id with the set fields
// of the model.
func (r *ModelRef) UpdateById(ctx context.Context, id interface{}) *Future[int64] {
	return r.db.Update().UpdateModelById(ctx, r.model, id)
}

// Delete deletes the rows matching the set fields of the model.
func (r *ModelRef) Delete(ctx context.Context) *Future[int64] {
	return r.db.Delete().DeleteModel(ctx, r.model)
}

// Set starts an UPDATE of the model's table.
func (r *ModelRef) Set(column interface{}, value interface{}) *Mutation {
	return r.db.Update().From(r.model).Set(column, value)
}

// Where starts an UPDATE or DELETE of the model's table.
func (r *ModelRef) Where(column interface{}, args ...interface{}) *Mutation {
	return r.db.Update().From(r.model).Where(column, args...)
}

// Query starts a SELECT on the model's table.
func (r *ModelRef) Query() *Query {
	return r.db.From(r.model)
}
