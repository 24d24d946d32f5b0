package balala

import (
	"reflect"
	"sync"
	"unsafe"
)

type (
	// Accessor identifies one field of a model type without spelling its
	// column name. Field[T] is the only implementation.
	Accessor interface {
		accessor() (reflect.Type, string)
	}

	// Field is a typed reference to the field of model T named Name. It is
	// comparable and can be used as a map key. Values are generated by
	// balala-gen or created with NewField and FieldOf.
	Field[T any] struct {
		name string
	}

	offsetKey struct {
		model  reflect.Type
		field  reflect.Type
		offset uintptr
	}
)

var fieldOffsets sync.Map // offsetKey => string

// NewField returns the accessor of field name of model T.
func NewField[T any](name string) Field[T] {
	return Field[T]{name: name}
}

// FieldOf returns the accessor of the field whose address fn returns:
//
//	username := balala.FieldOf(func(u *User) interface{} { return &u.Username })
//
// If fn does not return the address of a field of T, the accessor fails to
// resolve when it is used.
func FieldOf[T any](fn func(*T) interface{}) Field[T] {
	model := new(T)
	ptr := reflect.ValueOf(fn(model))
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return Field[T]{}
	}
	base := uintptr(unsafe.Pointer(model))
	addr := ptr.Pointer()
	rt := reflect.TypeOf(model).Elem()
	if addr < base || addr >= base+rt.Size() {
		return Field[T]{}
	}
	key := offsetKey{model: rt, field: ptr.Type().Elem(), offset: addr - base}
	if name, ok := fieldOffsets.Load(key); ok {
		return Field[T]{name: name.(string)}
	}
	name := fieldAtOffset(rt, key.field, key.offset)
	if name != "" {
		fieldOffsets.Store(key, name)
	}
	return Field[T]{name: name}
}

// Name returns the struct field name.
func (f Field[T]) Name() string {
	return f.name
}

func (f Field[T]) String() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name() + "." + f.name
}

func (f Field[T]) accessor() (reflect.Type, string) {
	return reflect.TypeOf((*T)(nil)).Elem(), f.name
}

func fieldAtOffset(rt reflect.Type, ft reflect.Type, offset uintptr) string {
	if rt.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if offset < f.Offset || offset >= f.Offset+f.Type.Size() {
			continue
		}
		if offset == f.Offset && f.Type == ft {
			return f.Name
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if name := fieldAtOffset(f.Type, ft, offset-f.Offset); name != "" {
				return name
			}
		}
	}
	return ""
}
