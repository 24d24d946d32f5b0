package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	file, err := parse("testdata/user.go", nil)
	require.NoError(t, err)
	assert.Equal(t, &File{
		Package: "models",
		Types: []Type{
			{Name: "User", Fields: []string{"Id", "Username", "note"}},
			{Name: "Profile", Fields: []string{"Bio"}},
		},
	}, file)
}

func TestParseSkips(t *testing.T) {
	src := `package shop

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Item struct {
	Id, Count int
	Price     float64 ` + "`column:\"price,omitempty\"`" + `
	_         struct{}
}

func helper() {
	type local struct{ Name string }
}
`
	file, err := parse("shop.go", src)
	require.NoError(t, err)
	assert.Equal(t, "shop", file.Package)
	assert.Equal(t, []Type{{Name: "Item", Fields: []string{"Id", "Count", "Price"}}}, file.Types)

	_, err = parse("broken.go", "package shop\ntype X struct {")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	file, err := parse("testdata/user.go", nil)
	require.NoError(t, err)

	require.NoError(t, file.filter(nil))
	assert.Len(t, file.Types, 2)

	require.NoError(t, file.filter([]string{"Profile"}))
	assert.Equal(t, []Type{{Name: "Profile", Fields: []string{"Bio"}}}, file.Types)

	assert.EqualError(t, file.filter([]string{"Order"}), "type Order not found")
}

func TestGen(t *testing.T) {
	file, err := parse("testdata/user.go", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen(&buf, file))
	out := buf.String()
	for _, want := range []string{
		"// Code generated by balala-gen. DO NOT EDIT.",
		"package models",
		`"github.com/gopsql/balala"`,
		"var UserFields = struct {",
		"balala.Field[User]",
		`balala.NewField[User]("Username")`,
		`balala.NewField[User]("note")`,
		"var ProfileFields = struct {",
		`balala.NewField[Profile]("Bio")`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Password")
	assert.NotContains(t, out, "secret")
}

func TestRun(t *testing.T) {
	output := filepath.Join(t.TempDir(), "user_fields.go")
	require.NoError(t, run("testdata/user.go", output, "User"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UserFields")
	assert.NotContains(t, string(data), "ProfileFields")

	assert.Error(t, run("testdata/user.go", output, "User, Missing"))
	assert.Error(t, run("testdata/missing.go", output, ""))
}
