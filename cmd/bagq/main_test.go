package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hasbyte1/go-parameterbag/bag"
)

const doc = `{"name": "Bølge 42", "db": {"host": "localhost", "port": "5432"}, "tags": ["a", "b"], "on": "yes"}`

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(context.Background(), append([]string{"bagq"}, args...))
	return out.String(), err
}

func TestGet(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"get", "db.host"}, "localhost\n"},
		{[]string{"get", "db"}, `{"host":"localhost","port":"5432"}` + "\n"},
		{[]string{"get", "tags"}, `["a","b"]` + "\n"},
		{[]string{"get", "--as", "int", "db.port"}, "5432\n"},
		{[]string{"get", "--as", "float", "db.port"}, "5432\n"},
		{[]string{"get", "--as", "bool", "on"}, "true\n"},
		{[]string{"get", "--as", "alpha", "name"}, "Bølge\n"},
		{[]string{"get", "--as", "alnum", "name"}, "Bølge42\n"},
		{[]string{"get", "--as", "digits", "name"}, "42\n"},
		{[]string{"get", "--as", "int", "--default", "7", "missing"}, "7\n"},
		{[]string{"get", "--default", "n/a", "db.user"}, "n/a\n"},
	}
	for _, tt := range tests {
		got, err := runApp(t, doc, tt.args...)
		if err != nil {
			t.Fatalf("bagq %v: %v", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("bagq %v = %q; want %q", tt.args, got, tt.want)
		}
	}
}

func TestGetErrors(t *testing.T) {
	if _, err := runApp(t, doc, "get", "missing"); !errors.Is(err, bag.ErrKeyNotFound) {
		t.Fatalf("missing key: err = %v; want ErrKeyNotFound", err)
	}
	if _, err := runApp(t, doc, "get", "--as", "int", "--default", "x", "missing"); err == nil {
		t.Fatal("expected an error for a non-numeric int default")
	}
	if _, err := runApp(t, doc, "get", "--as", "hex", "name"); err == nil {
		t.Fatal("expected an error for an unknown coercion")
	}
	if _, err := runApp(t, doc, "get"); err == nil {
		t.Fatal("expected an error without a KEY argument")
	}
}

func TestFirst(t *testing.T) {
	users := `[{"name": "a", "age": 20}, {"name": "b", "age": 40}, {"name": "c", "age": 50}]`
	got, err := runApp(t, users, "first", "--where", "value.age > 30")
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"name":"b","age":40}`+"\n" {
		t.Fatalf("first = %q", got)
	}

	if _, err := runApp(t, users, "first", "--where", "value.age > 99"); !errors.Is(err, errNoMatch) {
		t.Fatalf("err = %v; want errNoMatch", err)
	}
	if _, err := runApp(t, users, "first", "--where", "value.age >"); !errors.Is(err, bag.ErrInvalidExpression) {
		t.Fatalf("err = %v; want ErrInvalidExpression", err)
	}
}

func TestIndexBy(t *testing.T) {
	users := `[{"id": "u1", "n": 1}, {"id": "u2", "n": 2}]`
	got, err := runApp(t, users, "index-by", "id")
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"u1":{"id":"u1","n":1},"u2":{"id":"u2","n":2}}`+"\n" {
		t.Fatalf("index-by = %q", got)
	}
	if _, err := runApp(t, users, "index-by", "missing"); !errors.Is(err, bag.ErrKeyNotFound) {
		t.Fatalf("err = %v; want ErrKeyNotFound", err)
	}
}

func TestKeys(t *testing.T) {
	got, err := runApp(t, doc, "keys")
	if err != nil {
		t.Fatal(err)
	}
	if got != "name\ndb\ntags\non\n" {
		t.Fatalf("keys = %q", got)
	}

	got, err = runApp(t, doc, "keys", "--dot")
	if err != nil {
		t.Fatal(err)
	}
	want := "name = Bølge 42\ndb.host = localhost\ndb.port = 5432\ntags.0 = a\ntags.1 = b\non = yes\n"
	if got != want {
		t.Fatalf("keys --dot = %q; want %q", got, want)
	}
}

func TestChecksumIsStable(t *testing.T) {
	a, err := runApp(t, `{"a": 1, "b": 2}`, "checksum")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := runApp(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", "checksum")
	if a != b || len(strings.TrimSpace(a)) != 64 {
		t.Fatalf("checksums %q and %q; want equal 64-char digests", a, b)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		path string
		args []string
	}{
		{write("c.yaml", "db:\n  port: 5432\n"), nil},
		{write("c.toml", "[db]\nport = 5432\n"), nil},
		{write("c.qs", "db[port]=5432\n"), nil},
		{write("c.conf", "db[port]=5432"), []string{"--format", "query"}},
	}
	for _, tt := range tests {
		args := append([]string{"--file", tt.path}, tt.args...)
		args = append(args, "get", "--as", "int", "db.port")
		got, err := runApp(t, "", args...)
		if err != nil {
			t.Fatalf("bagq %v: %v", args, err)
		}
		if got != "5432\n" {
			t.Errorf("bagq %v = %q; want 5432", args, got)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path, format, want string
	}{
		{"-", "", "json"},
		{"", "", "json"},
		{"a.JSON", "", "json"},
		{"a.yml", "", "yaml"},
		{"a.yaml", "", "yaml"},
		{"a.toml", "", "toml"},
		{"a.qs", "", "query"},
		{"a.json", "YAML", "yaml"},
	}
	for _, tt := range tests {
		if got := formatFor(tt.path, tt.format); got != tt.want {
			t.Errorf("formatFor(%q, %q) = %q; want %q", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	if _, err := decode([]byte("x"), "ini"); err == nil || !strings.Contains(err.Error(), `"ini"`) {
		t.Fatalf("decode(ini) err = %v; want unsupported format", err)
	}
}
