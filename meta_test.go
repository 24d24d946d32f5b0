package balala

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type (
	timestamps struct {
		CreatedAt time.Time
	}

	Article struct {
		__TABLE_NAME__ string `articles`

		ArticleId int `column:"article_id,pk"`
		Title     string
		Body      string `column:"content"`
		Draft     bool   `column:"-"`
		secret    string
		views     int `column:"views"`
		timestamps
	}

	Tag struct {
		Name string
	}

	Order struct {
		No    string
		Total int
	}
)

func (Order) TableName() string  { return "orders" }
func (Order) PrimaryKey() string { return "no" }

func TestMetaModel(t *testing.T) {
	t.Parallel()
	meta := NewMeta("app_")

	tests := []struct {
		model       interface{}
		wantTable   string
		wantPK      string
		wantPKField string
		wantColumns []string
	}{
		{Article{}, "articles", "article_id", "ArticleId", []string{"article_id", "title", "content", "views", "created_at"}},
		{&Tag{}, "app_tag", "id", "Id", []string{"name"}},
		{reflect.TypeOf(Order{}), "orders", "no", "No", []string{"no", "total"}},
	}
	for _, tt := range tests {
		info, err := meta.Model(tt.model)
		if err != nil {
			t.Fatal(err)
		}
		if info.TableName != tt.wantTable {
			t.Errorf("TableName = %q, want %q", info.TableName, tt.wantTable)
		}
		if info.PKColumn != tt.wantPK {
			t.Errorf("PKColumn = %q, want %q", info.PKColumn, tt.wantPK)
		}
		if info.PKField != tt.wantPKField {
			t.Errorf("PKField = %q, want %q", info.PKField, tt.wantPKField)
		}
		if got := info.ColumnNames(); !reflect.DeepEqual(got, tt.wantColumns) {
			t.Errorf("ColumnNames() = %v, want %v", got, tt.wantColumns)
		}
	}

	if name, _ := meta.TableName(&Article{}); name != "articles" {
		t.Errorf("TableName() = %q, want %q", name, "articles")
	}
	if pk, _ := meta.PKColumn(Tag{}); pk != "id" {
		t.Errorf("PKColumn() = %q, want %q", pk, "id")
	}
	if field, _ := meta.PKField(Order{}); field != "No" {
		t.Errorf("PKField() = %q, want %q", field, "No")
	}
}

func TestMetaModelCached(t *testing.T) {
	t.Parallel()
	meta := NewMeta("")

	var wg sync.WaitGroup
	infos := make([]*ModelInfo, 32)
	for i := range infos {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			infos[i], _ = meta.Model(&Tag{})
		}(i)
	}
	wg.Wait()
	for i, info := range infos {
		if info == nil || info != infos[0] {
			t.Fatalf("infos[%d] = %p, want %p", i, info, infos[0])
		}
	}
	if info, _ := meta.Model(Tag{}); info != infos[0] {
		t.Error("Model(Tag{}) returned a different ModelInfo")
	}
}

func TestMetaModelErrors(t *testing.T) {
	t.Parallel()
	meta := NewMeta("")

	if _, err := meta.Model(nil); err != ErrFromNotSet {
		t.Errorf("Model(nil) error = %v, want %v", err, ErrFromNotSet)
	}
	_, err := meta.Model(42)
	var merr *MetadataResolutionError
	if !errors.As(err, &merr) || merr.Type != "int" || !errors.Is(err, ErrNotStruct) {
		t.Errorf("Model(42) error = %v", err)
	}
	if _, err := meta.Model(struct{ Name string }{}); !errors.As(err, &merr) {
		t.Errorf("Model(anonymous) error = %v, want MetadataResolutionError", err)
	}
}

func TestMetaFields(t *testing.T) {
	t.Parallel()
	meta := NewMeta("")

	if column, err := meta.ColumnOf(NewField[Article]("Body")); err != nil || column != "content" {
		t.Errorf("ColumnOf(Body) = %q, %v, want content", column, err)
	}
	if column, err := meta.Column(NewField[Article]("CreatedAt")); err != nil || column != "created_at" {
		t.Errorf("Column(CreatedAt) = %q, %v, want created_at", column, err)
	}
	if column, err := meta.Column("raw_column"); err != nil || column != "raw_column" {
		t.Errorf("Column(string) = %q, %v", column, err)
	}
	if _, err := meta.Column(42); err != ErrInvalidColumn {
		t.Errorf("Column(42) error = %v, want %v", err, ErrInvalidColumn)
	}

	if name, err := meta.FieldNameOf(NewField[Article]("Title")); err != nil || name != "Title" {
		t.Errorf("FieldNameOf(Title) = %q, %v", name, err)
	}
	_, err := meta.FieldNameOf(NewField[Article]("Draft"))
	var merr *MetadataResolutionError
	if !errors.As(err, &merr) || merr.Field != "Draft" {
		t.Errorf("FieldNameOf(Draft) error = %v, want MetadataResolutionError", err)
	}
	if _, err := meta.ColumnOf(NewField[Article]("secret")); err == nil {
		t.Error("ColumnOf(secret) succeeded for a field without column tag")
	}

	info, _ := meta.Model(Article{})
	if f, ok := info.FieldByColumn("TITLE"); !ok || f.Name != "Title" {
		t.Errorf("FieldByColumn(TITLE) = %v, %v", f, ok)
	}
	if f, ok := info.FieldByName("ArticleId"); !ok || !f.PK {
		t.Errorf("FieldByName(ArticleId) = %v, %v, want pk field", f, ok)
	}
}

func TestFieldHandle(t *testing.T) {
	t.Parallel()
	meta := NewMeta("")

	article := Article{Title: "hello", views: 3}
	article.CreatedAt = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	rv := reflect.ValueOf(&article).Elem()

	views, err := meta.FieldHandle(&article, "views")
	if err != nil {
		t.Fatal(err)
	}
	if views.Exported {
		t.Error("views is reported as exported")
	}
	if got := views.Value(rv).Int(); got != 3 {
		t.Errorf("views = %d, want 3", got)
	}
	views.Value(rv).SetInt(10)
	if article.views != 10 {
		t.Errorf("views = %d after set, want 10", article.views)
	}

	created, err := meta.FieldHandle(Article{}, "CreatedAt")
	if err != nil {
		t.Fatal(err)
	}
	if got := created.Value(rv).Interface().(time.Time); !got.Equal(article.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got, article.CreatedAt)
	}

	if _, err := meta.FieldHandle(Article{}, "Missing"); !errors.Is(err, errNoSuchField) {
		t.Errorf("FieldHandle(Missing) error = %v, want %v", err, errNoSuchField)
	}
}
