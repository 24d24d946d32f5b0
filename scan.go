package balala

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode copies the columns of row into the struct pointed to by dest.
// Columns are matched with field column names, case-insensitive; columns
// without a field are ignored.
func (d *DB) Decode(row Row, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrMustBePointer
	}
	rv = rv.Elem()
	info, err := d.meta.Model(rv.Type())
	if err != nil {
		return err
	}
	for column, value := range row {
		f, ok := info.FieldByColumn(column)
		if !ok {
			continue
		}
		if err := assign(f.Value(rv), value); err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
	}
	return nil
}

// OneAs runs q.One and decodes the row into a T; nil when nothing matches.
func OneAs[T any](ctx context.Context, q *Query) *Future[*T] {
	db := q.db
	return Then(q.One(ctx), func(row Row) (*T, error) {
		if row == nil {
			return nil, nil
		}
		return decodeAs[T](db, row)
	})
}

// AllAs runs q.All and decodes every row into a T.
func AllAs[T any](ctx context.Context, q *Query) *Future[[]T] {
	db := q.db
	return Then(q.All(ctx), func(rows []Row) ([]T, error) {
		return decodeRows[T](db, rows)
	})
}

// PageAs runs q.PageRow and decodes the rows of the page into T values.
func PageAs[T any](ctx context.Context, q *Query, row PageRow) *Future[*Page[T]] {
	db := q.db
	return Then(q.PageRow(ctx, row), func(p *Page[Row]) (*Page[T], error) {
		return mapPage(p, func(r Row) (T, error) {
			t, err := decodeAs[T](db, r)
			if err != nil {
				var zero T
				return zero, err
			}
			return *t, nil
		})
	})
}

func decodeAs[T any](db *DB, row Row) (*T, error) {
	t := new(T)
	if err := db.Decode(row, t); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeRows[T any](db *DB, rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		t, err := decodeAs[T](db, row)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func assign(dst reflect.Value, src interface{}) error {
	if src == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if scanner, ok := dst.Addr().Interface().(sql.Scanner); ok {
		return scanner.Scan(src)
	}
	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), src); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}
	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}
	if s, ok := src.(string); ok {
		return assignString(dst, s)
	}
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if isNumber(sv.Kind()) {
			dst.Set(sv.Convert(dst.Type()))
			return nil
		}
	case reflect.Bool:
		if isNumber(sv.Kind()) {
			dst.SetBool(!sv.IsZero())
			return nil
		}
	case reflect.String:
		if isNumber(sv.Kind()) {
			dst.SetString(fmt.Sprint(src))
			return nil
		}
	}
	return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
}

func assignString(dst reflect.Value, s string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		dst.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		dst.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		dst.SetFloat(n)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		dst.SetBool(b)
		return nil
	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			dst.SetBytes([]byte(s))
			return nil
		}
	}
	if dst.Type() == reflect.TypeOf(time.Time{}) {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				dst.Set(reflect.ValueOf(t))
				return nil
			}
		}
	}
	return fmt.Errorf("cannot assign string to %s", dst.Type())
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
