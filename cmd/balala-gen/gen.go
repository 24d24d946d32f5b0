package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"
)

const balalaPath = "github.com/gopsql/balala"

// parse reads the struct types of a Go source file. src may be nil to read
// the file from disk.
func parse(filename string, src interface{}) (*File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	s := &SingleFileEntryVisitor{}
	ast.Walk(s, f)
	return s.Get(), nil
}

// filter keeps the named types, all of them when names is empty.
func (f *File) filter(names []string) error {
	if len(names) == 0 {
		return nil
	}
	var types []Type
	for _, name := range names {
		found := false
		for _, t := range f.Types {
			if t.Name == name {
				types = append(types, t)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("type %s not found", name)
		}
	}
	f.Types = types
	return nil
}

// gen writes one "<Type>Fields" variable of accessors per struct type.
func gen(w io.Writer, file *File) error {
	f := jen.NewFile(file.Package)
	f.HeaderComment("Code generated by balala-gen. DO NOT EDIT.")
	for _, t := range file.Types {
		if len(t.Fields) == 0 {
			continue
		}
		fields := make([]jen.Code, 0, len(t.Fields))
		values := jen.Dict{}
		for _, name := range t.Fields {
			fields = append(fields, jen.Id(name).Qual(balalaPath, "Field").Types(jen.Id(t.Name)))
			values[jen.Id(name)] = jen.Qual(balalaPath, "NewField").Types(jen.Id(t.Name)).Call(jen.Lit(name))
		}
		f.Commentf("%sFields holds the column accessors of %s.", t.Name, t.Name)
		f.Var().Id(t.Name + "Fields").Op("=").Struct(fields...).Values(values)
	}
	return f.Render(w)
}
