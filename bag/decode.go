package bag

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML document into a Bag, keeping mapping key order.
// Since JSON is a subset of YAML this also accepts JSON input. Aliases are
// resolved; an empty document yields an empty bag.
func FromYAML(data []byte) (*Bag, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Empty(), nil
	}
	v, err := yamlValue(doc.Content[0], 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return rootBag(v)
}

// maxYAMLDepth bounds alias expansion.
const maxYAMLDepth = 256

func yamlValue(n *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("line %d: document nested too deeply", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0], depth+1)
	case yaml.AliasNode:
		return yamlValue(n.Alias, depth+1)
	case yaml.MappingNode:
		b := Empty()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			v, err := yamlValue(val, depth+1)
			if err != nil {
				return nil, err
			}
			b.set(key.Value, v)
		}
		return b, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := yamlValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return normalize(v), nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// FromTOML decodes a TOML document into a Bag. Key order follows the order
// in which keys appear in the document.
func FromTOML(data []byte) (*Bag, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return tomlBag("", "", raw, tomlOrder(md)), nil
}

// tomlOrder maps each key path to its first position in the document. Paths
// are joined with NUL, and elements of table arrays carry their index so each
// element keeps its own key order.
func tomlOrder(md toml.MetaData) map[string]int {
	order := make(map[string]int)
	elems := make(map[string]int)
	for i, k := range md.Keys() {
		path := ""
		for j, part := range k {
			path += part
			if j == len(k)-1 {
				break
			}
			if n, ok := elems[path]; ok {
				path += "\x00" + strconv.Itoa(n)
			}
			path += "\x00"
		}
		if md.Type(k...) == "ArrayHash" {
			if n, ok := elems[path]; ok {
				elems[path] = n + 1
			} else {
				elems[path] = 0
			}
		}
		if _, seen := order[path]; !seen {
			order[path] = i
		}
	}
	return order
}

// tomlBag orders the keys of m by their document position under prefix.
// Inline table arrays are not indexed in the metadata, so alt is tried when
// a key is not found under prefix.
func tomlBag(prefix, alt string, m map[string]any, order map[string]int) *Bag {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	pos := func(k string) int {
		if i, ok := order[prefix+k]; ok {
			return i
		}
		if i, ok := order[alt+k]; ok {
			return i
		}
		return math.MaxInt
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := pos(keys[i]), pos(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	b := &Bag{values: make(map[string]any, len(m))}
	for _, k := range keys {
		b.set(k, tomlValue(prefix+k+"\x00", m[k], order))
	}
	return b
}

func tomlValue(prefix string, v any, order map[string]int) any {
	switch x := v.(type) {
	case map[string]any:
		return tomlBag(prefix, prefix, x, order)
	case []map[string]any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = tomlBag(prefix+strconv.Itoa(i)+"\x00", prefix, elem, order)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = tomlValue(prefix, elem, order)
		}
		return out
	case time.Time:
		return tomlTime(x)
	}
	return normalize(v)
}

// tomlTime formats a TOML date-time as RFC 3339 text. Local dates and times,
// which the decoder marks with named zones, keep their partial forms.
func tomlTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format(time.DateOnly)
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}
