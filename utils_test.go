package balala_test

import (
	"testing"

	"github.com/gopsql/balala"
)

type (
	user    struct{}
	product struct{}
)

func (_ product) TableName() string {
	return "different_products"
}

func TestToTableName(t *testing.T) {
	cases := [][]interface{}{
		{struct{}{}, "error_no_table_name"},
		{user{}, "user"},
		{&user{}, "user"},
		{product{}, "different_products"},
		{
			struct {
				__TABLE_NAME__ string `custom_name`
			}{}, "custom_name",
		},
	}
	for i, c := range cases {
		got := balala.ToTableName(c[0])
		expected, ok := c[1].(string)
		if !ok {
			t.Errorf("case %d type conversion failed", i)
		}
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToUnderscore(t *testing.T) {
	cases := [][]string{
		{"column", "column"},
		{"Column", "column"},
		{"ColumnName", "column_name"},
		{"column_name", "column_name"},
		{"Column_Name", "column_name"},
		{"Version2", "version2"},
	}
	for i, c := range cases {
		got := balala.ToUnderscore(c[0])
		expected := c[1]
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToPlural(t *testing.T) {
	cases := [][]string{
		{"user", "users"},
		{"category", "categories"},
		{"person", "people"},
	}
	for i, c := range cases {
		if got := balala.ToPlural(c[0]); got != c[1] {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
	if got := balala.ToPluralUnderscore("CategoryItem"); got != "category_items" {
		t.Errorf("ToPluralUnderscore() = %q, want %q", got, "category_items")
	}
}

func TestToCamel(t *testing.T) {
	cases := [][]string{
		{"id", "Id"},
		{"user_id", "UserId"},
		{"created_at_utc", "CreatedAtUtc"},
	}
	for i, c := range cases {
		if got := balala.ToCamel(c[0]); got != c[1] {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}
