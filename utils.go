package balala

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	// DefaultColumnNamer converts struct field names into column names
	// when the field has no "column" tag. Default is ToUnderscore.
	DefaultColumnNamer func(string) string = ToUnderscore

	// DefaultTableNamer converts struct names into table names when the
	// struct has neither TableName() nor a __TABLE_NAME__ field. The
	// table prefix of the DB is added in front of its result. Default is
	// ToUnderscore, use ToPluralUnderscore for "users" style names.
	DefaultTableNamer func(string) string = ToUnderscore
)

const (
	tableNameField = "__TABLE_NAME__"
	defaultPK      = "id"
)

// ToTableName returns table name of a struct, without any table prefix. If
// struct has "TableName() string" receiver method, its return value is used.
// If name is empty and struct has a __TABLE_NAME__ field, its tag value is
// used. Otherwise struct's name converted by DefaultTableNamer is returned.
// "error_no_table_name" is returned for anonymous structs.
func ToTableName(object interface{}) string {
	rt := indirectType(object)
	if name := explicitTableName(rt); name != "" {
		return name
	}
	if rt.Kind() != reflect.Struct || rt.Name() == "" {
		return "error_no_table_name"
	}
	return DefaultTableNamer(rt.Name())
}

func explicitTableName(rt reflect.Type) string {
	if rt.Kind() != reflect.Struct {
		return ""
	}
	if o, ok := reflect.New(rt).Interface().(interface{ TableName() string }); ok {
		if name := o.TableName(); name != "" {
			return name
		}
	}
	if f, ok := rt.FieldByName(tableNameField); ok {
		return string(f.Tag)
	}
	return ""
}

func explicitPrimaryKey(rt reflect.Type) string {
	if o, ok := reflect.New(rt).Interface().(interface{ PrimaryKey() string }); ok {
		return o.PrimaryKey()
	}
	return ""
}

func indirectType(object interface{}) reflect.Type {
	var rt reflect.Type
	if o, ok := object.(reflect.Type); ok {
		rt = o
	} else {
		rt = reflect.TypeOf(object)
	}
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt
}

func indirectValue(object interface{}) reflect.Value {
	rv := reflect.ValueOf(object)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// ToPlural converts a word to its plural form, "category" becomes
// "categories" and "person" becomes "people".
func ToPlural(in string) string {
	return inflect.Pluralize(in)
}

// ToPluralUnderscore converts "CategoryItem" to "category_items".
func ToPluralUnderscore(in string) string {
	return ToPlural(ToUnderscore(in))
}

// ToUnderscore converts "ColumnName" to "column_name".
func ToUnderscore(str string) string {
	var output []rune
	var segment []rune
	for _, r := range str {
		// not treat number as separate segment
		if !unicode.IsLower(r) && r != '_' && !unicode.IsNumber(r) {
			output = addSegment(output, segment)
			segment = nil
		}
		segment = append(segment, unicode.ToLower(r))
	}
	output = addSegment(output, segment)
	return string(output)
}

func addSegment(inrune, segment []rune) []rune {
	if len(segment) == 0 {
		return inrune
	}
	if len(inrune) != 0 && inrune[len(inrune)-1] != '_' {
		inrune = append(inrune, '_')
	}
	inrune = append(inrune, segment...)
	return inrune
}

// ToCamel converts "user_id" to "UserId".
func ToCamel(str string) string {
	var b strings.Builder
	upper := true
	for _, r := range str {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUnset reports whether a field value counts as null: nil for pointers,
// interfaces, maps, slices, funcs and channels, the zero value otherwise.
func isUnset(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return v.IsZero()
}

// isEmptyString reports whether v holds "" directly or through a pointer.
func isEmptyString(v reflect.Value) bool {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Kind() == reflect.String && v.Len() == 0
}

// expandArgs flattens a single slice argument into its elements, so that
// In("id", []int{1, 2}) behaves like In("id", 1, 2). []byte is kept as is.
func expandArgs(args []interface{}) []interface{} {
	if len(args) != 1 || args[0] == nil {
		return args
	}
	rv := reflect.ValueOf(args[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return args
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return args
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// placeholders returns "?, ?, ?" for n = 3.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
