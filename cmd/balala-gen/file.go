package main

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"
)

type (
	File struct {
		Package string
		Types   []Type
	}

	Type struct {
		Name   string
		Fields []string
	}
)

// SingleFileEntryVisitor collects the struct types of one parsed file.
type SingleFileEntryVisitor struct {
	file *FileVisitor
}

func (s *SingleFileEntryVisitor) Get() *File {
	types := make([]Type, 0, len(s.file.types))
	for _, typ := range s.file.types {
		types = append(types, Type{
			Name:   typ.name,
			Fields: typ.fields,
		})
	}
	return &File{
		Package: s.file.Package,
		Types:   types,
	}
}

func (s *SingleFileEntryVisitor) Visit(node ast.Node) ast.Visitor {
	fn, ok := node.(*ast.File)
	if !ok {
		return s
	}
	s.file = &FileVisitor{
		Package: fn.Name.String(),
	}
	return s.file
}

type FileVisitor struct {
	Package string
	types   []*TypeVisitor
}

func (f *FileVisitor) Visit(node ast.Node) ast.Visitor {
	if _, ok := node.(*ast.FuncDecl); ok {
		return nil // local types are not models
	}
	n, ok := node.(*ast.TypeSpec)
	if !ok {
		return f
	}
	if n.TypeParams != nil && len(n.TypeParams.List) > 0 {
		return nil
	}
	if _, ok := n.Type.(*ast.StructType); !ok {
		return nil
	}
	v := &TypeVisitor{name: n.Name.String()}
	f.types = append(f.types, v)
	return v
}

type TypeVisitor struct {
	name   string
	fields []string
}

// Visit only looks at the top level fields of the struct, nested struct
// literals are not descended into.
func (t *TypeVisitor) Visit(node ast.Node) ast.Visitor {
	st, ok := node.(*ast.StructType)
	if !ok {
		return t
	}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 { // embedded
			continue
		}
		column := columnTag(field)
		if column == "-" {
			continue
		}
		for _, name := range field.Names {
			if name.Name == "__TABLE_NAME__" || name.Name == "_" {
				continue
			}
			if !name.IsExported() && column == "" {
				continue
			}
			t.fields = append(t.fields, name.Name)
		}
	}
	return nil
}

func columnTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	column := reflect.StructTag(tag).Get("column")
	if i := strings.Index(column, ","); i != -1 && column[:i] != "" {
		return column[:i]
	}
	return column
}
