package balala

import (
	"context"
	"testing"
)

type (
	audit struct {
		CreatedBy string
		UpdatedBy string
	}

	Comment struct {
		Id     int
		PostId int
		Body   string
		audit
	}
)

func TestFieldOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field[Comment]
		want  string
	}{
		{"first field", FieldOf(func(c *Comment) interface{} { return &c.Id }), "Id"},
		{"field", FieldOf(func(c *Comment) interface{} { return &c.Body }), "Body"},
		{"embedded field", FieldOf(func(c *Comment) interface{} { return &c.UpdatedBy }), "UpdatedBy"},
		{"not an address", FieldOf(func(c *Comment) interface{} { return c.Body }), ""},
		{"outside the model", FieldOf(func(c *Comment) interface{} { return new(int) }), ""},
	}
	for _, tt := range tests {
		if got := tt.field.Name(); got != tt.want {
			t.Errorf("%s: Name() = %q, want %q", tt.name, got, tt.want)
		}
	}

	again := FieldOf(func(c *Comment) interface{} { return &c.Body })
	if again != NewField[Comment]("Body") {
		t.Error("FieldOf(Body) != NewField(Body)")
	}
	if s := again.String(); s != "Comment.Body" {
		t.Errorf("String() = %q, want %q", s, "Comment.Body")
	}
}

func TestAccessorInQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, client := newTestDB()

	postId := FieldOf(func(c *Comment) interface{} { return &c.PostId })
	createdBy := NewField[Comment]("CreatedBy")
	db.From(Comment{}).Select(postId, createdBy).Where(postId, 1).Order(createdBy, DESC).All(ctx)
	checkStatement(t, client.last(t), "SELECT post_id, created_by FROM comment WHERE post_id = ? ORDER BY created_by desc", []interface{}{1})

	_, err := db.From(Comment{}).Where(FieldOf(func(c *Comment) interface{} { return c.Body }), 1).All(ctx).Await(ctx)
	if err == nil {
		t.Error("unresolvable accessor did not fail the query")
	}
}
