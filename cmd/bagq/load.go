package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hasbyte1/go-parameterbag/bag"
)

// formatFor returns the document format for path. An explicit format wins;
// otherwise it is inferred from the extension, and stdin defaults to JSON.
func formatFor(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if path == "" || path == "-" {
		return "json"
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml":
		return "yaml"
	case ".qs":
		return "query"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

func load(path, format string, stdin io.Reader) (*bag.Bag, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return decode(data, formatFor(path, format))
}

func decode(data []byte, format string) (*bag.Bag, error) {
	switch format {
	case "json":
		return bag.FromJSON(data)
	case "yaml":
		return bag.FromYAML(data)
	case "toml":
		return bag.FromTOML(data)
	case "query":
		return bag.FromQuery(strings.TrimSpace(string(data)))
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: json, yaml, toml, query)", format)
	}
}
