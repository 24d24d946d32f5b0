// Command balala-gen generates typed column accessors for the structs of a
// Go source file:
//
//	//go:generate balala-gen -type User user.go
//
// writes user_fields.go with
//
//	var UserFields = struct {
//		Id       balala.Field[User]
//		Username balala.Field[User]
//	}{...}
//
// so that queries can say Where(UserFields.Username, "jack").
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	typeNames := flag.String("type", "", "comma separated struct names, default all structs")
	output := flag.String("output", "", "output file name, default <file>_fields.go")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: balala-gen [-type T1,T2] [-output file] file.go")
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *output, *typeNames); err != nil {
		fmt.Fprintln(os.Stderr, "balala-gen:", err)
		os.Exit(1)
	}
}

func run(srcFile, output, typeNames string) error {
	file, err := parse(srcFile, nil)
	if err != nil {
		return err
	}
	var names []string
	if typeNames != "" {
		for _, name := range strings.Split(typeNames, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}
	if err := file.filter(names); err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(srcFile, ".go") + "_fields.go"
	}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	return gen(out, file)
}
