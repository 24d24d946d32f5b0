package balala

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sync/singleflight"
)

type (
	// Meta caches table and column metadata of model types. The first
	// resolution of a type is computed once even when many goroutines ask
	// for it at the same time; later lookups never take a write lock.
	Meta struct {
		tablePrefix string

		mu     sync.RWMutex
		models map[reflect.Type]*ModelInfo
		group  singleflight.Group

		columns sync.Map // Accessor => string
	}

	// ModelInfo is the immutable metadata of one model type.
	ModelInfo struct {
		Type      reflect.Type
		TableName string
		PKColumn  string
		PKField   string
		Fields    []FieldInfo

		byName   map[string]int
		byColumn map[string]int
	}

	// FieldInfo describes one mapped struct field.
	FieldInfo struct {
		Name       string       // struct field name
		ColumnName string       // column name in database
		Index      []int        // index path, embedded structs flattened
		Type       reflect.Type // field type
		Exported   bool         // false if any step of Index is unexported
		PK         bool         // marked with the "pk" column tag option
	}
)

// NewMeta creates an empty metadata cache. The table prefix is added in
// front of derived table names, not in front of explicit ones.
func NewMeta(tablePrefix string) *Meta {
	return &Meta{
		tablePrefix: tablePrefix,
		models:      map[reflect.Type]*ModelInfo{},
	}
}

// Model returns metadata of a struct, a pointer to struct or a reflect.Type.
func (m *Meta) Model(model interface{}) (*ModelInfo, error) {
	if model == nil {
		return nil, ErrFromNotSet
	}
	rt := indirectType(model)
	if rt == nil {
		return nil, ErrFromNotSet
	}
	m.mu.RLock()
	info, ok := m.models[rt]
	m.mu.RUnlock()
	if ok {
		return info, nil
	}
	v, err, _ := m.group.Do(rt.PkgPath()+"."+rt.String(), func() (interface{}, error) {
		m.mu.RLock()
		info, ok := m.models[rt]
		m.mu.RUnlock()
		if ok {
			return info, nil
		}
		info, err := parseModel(rt, m.tablePrefix)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.models[rt] = info
		m.mu.Unlock()
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ModelInfo), nil
}

// TableName returns the resolved table name of model.
func (m *Meta) TableName(model interface{}) (string, error) {
	info, err := m.Model(model)
	if err != nil {
		return "", err
	}
	return info.TableName, nil
}

// PKColumn returns the primary key column of model, "id" by default.
func (m *Meta) PKColumn(model interface{}) (string, error) {
	info, err := m.Model(model)
	if err != nil {
		return "", err
	}
	return info.PKColumn, nil
}

// PKField returns the struct field name holding the primary key of model.
func (m *Meta) PKField(model interface{}) (string, error) {
	info, err := m.Model(model)
	if err != nil {
		return "", err
	}
	return info.PKField, nil
}

// ColumnOf resolves an accessor to its column name.
func (m *Meta) ColumnOf(a Accessor) (string, error) {
	if v, ok := m.columns.Load(a); ok {
		return v.(string), nil
	}
	f, err := m.accessorField(a)
	if err != nil {
		return "", err
	}
	m.columns.Store(a, f.ColumnName)
	return f.ColumnName, nil
}

// FieldNameOf resolves an accessor to its struct field name, failing when
// the field is not mapped.
func (m *Meta) FieldNameOf(a Accessor) (string, error) {
	f, err := m.accessorField(a)
	if err != nil {
		return "", err
	}
	return f.Name, nil
}

func (m *Meta) accessorField(a Accessor) (*FieldInfo, error) {
	rt, name := a.accessor()
	info, err := m.Model(rt)
	if err != nil {
		return nil, err
	}
	f, ok := info.FieldByName(name)
	if !ok {
		return nil, &MetadataResolutionError{Type: rt.String(), Field: name, Err: errNoSuchField}
	}
	return f, nil
}

// FieldHandle returns the cached field description used to read and write
// the named field of model.
func (m *Meta) FieldHandle(model interface{}, name string) (*FieldInfo, error) {
	info, err := m.Model(model)
	if err != nil {
		return nil, err
	}
	f, ok := info.FieldByName(name)
	if !ok {
		return nil, &MetadataResolutionError{Type: info.Type.String(), Field: name, Err: errNoSuchField}
	}
	return f, nil
}

// Column turns a column argument into a column name. Strings are used as
// they are, accessors are resolved through the cache.
func (m *Meta) Column(column interface{}) (string, error) {
	switch c := column.(type) {
	case string:
		return c, nil
	case Accessor:
		return m.ColumnOf(c)
	}
	return "", ErrInvalidColumn
}

// FieldByName returns the mapped field with the struct field name.
func (info *ModelInfo) FieldByName(name string) (*FieldInfo, bool) {
	i, ok := info.byName[name]
	if !ok {
		return nil, false
	}
	return &info.Fields[i], true
}

// FieldByColumn returns the mapped field of a column, case-insensitive.
func (info *ModelInfo) FieldByColumn(column string) (*FieldInfo, bool) {
	i, ok := info.byColumn[strings.ToLower(column)]
	if !ok {
		return nil, false
	}
	return &info.Fields[i], true
}

// ColumnNames returns all mapped column names in declaration order.
func (info *ModelInfo) ColumnNames() []string {
	out := make([]string, len(info.Fields))
	for i := range info.Fields {
		out[i] = info.Fields[i].ColumnName
	}
	return out
}

// Value returns the field of an addressable struct value. Unexported
// fields are reached through unsafe so they can be read and written.
func (f *FieldInfo) Value(structValue reflect.Value) reflect.Value {
	value := structValue.FieldByIndex(f.Index)
	if f.Exported {
		return value
	}
	return reflect.NewAt(value.Type(), unsafe.Pointer(value.UnsafeAddr())).Elem()
}

func parseModel(rt reflect.Type, tablePrefix string) (*ModelInfo, error) {
	if rt.Kind() != reflect.Struct {
		return nil, &MetadataResolutionError{Type: rt.String(), Err: ErrNotStruct}
	}
	info := &ModelInfo{
		Type:     rt,
		Fields:   parseStruct(rt, nil, true),
		byName:   map[string]int{},
		byColumn: map[string]int{},
	}
	for i, f := range info.Fields {
		if _, ok := info.byName[f.Name]; !ok {
			info.byName[f.Name] = i
		}
		if _, ok := info.byColumn[strings.ToLower(f.ColumnName)]; !ok {
			info.byColumn[strings.ToLower(f.ColumnName)] = i
		}
	}

	info.TableName = explicitTableName(rt)
	if info.TableName == "" {
		if rt.Name() == "" { // anonymous struct has no name
			return nil, &MetadataResolutionError{Type: rt.String(), Err: errors.New("anonymous struct has no table name")}
		}
		info.TableName = tablePrefix + DefaultTableNamer(rt.Name())
	}

	info.PKColumn = explicitPrimaryKey(rt)
	if info.PKColumn == "" {
		for _, f := range info.Fields {
			if f.PK {
				info.PKColumn = f.ColumnName
				break
			}
		}
	}
	if info.PKColumn == "" {
		info.PKColumn = defaultPK
	}
	if f, ok := info.FieldByColumn(info.PKColumn); ok {
		info.PKField = f.Name
	} else {
		info.PKField = ToCamel(info.PKColumn)
	}
	return info, nil
}

func parseStruct(rt reflect.Type, index []int, exported bool) (fields []FieldInfo) {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Name == tableNameField {
			continue
		}
		idx := append(append([]int{}, index...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("column") == "" {
			fields = append(fields, parseStruct(f.Type, idx, exported && f.PkgPath == "")...)
			continue
		}

		columnName := f.Tag.Get("column")
		if columnName == "-" {
			continue
		}
		var pk bool
		if comma := strings.Index(columnName, ","); comma != -1 {
			for _, opt := range strings.Split(columnName[comma+1:], ",") {
				if strings.TrimSpace(opt) == "pk" {
					pk = true
				}
			}
			columnName = columnName[:comma]
		}
		if columnName == "" {
			if f.PkgPath != "" && f.Tag.Get("column") == "" {
				continue // ignore unexported field if no column specified
			}
			columnName = DefaultColumnNamer(f.Name)
		}

		fields = append(fields, FieldInfo{
			Name:       f.Name,
			ColumnName: columnName,
			Index:      idx,
			Type:       f.Type,
			Exported:   exported && f.PkgPath == "",
			PK:         pk,
		})
	}
	return
}
