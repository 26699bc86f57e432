package bag

import (
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation helpers
//
// A dotted key such as "user.address.city" walks one level per segment.
// Every segment must exist and hold a filled value, otherwise the walk stops
// and the caller's default is used. Bags are searched by key, sequences by
// decimal index and FieldReader values by attribute name.
//
//	b := bag.FromMap(map[string]any{
//	    "user": map[string]any{
//	        "address": map[string]any{"city": "London"},
//	        "tags":    []any{"a", "b"},
//	    },
//	})
//
//	b.Get("user.address.city")  → "London"
//	b.Get("user.tags.1")        → "b"
//	b.Get("user.zip", "none")   → "none"
// ─────────────────────────────────────────────────────────────────────────────

func (b *Bag) resolvePath(key string) (any, bool) {
	var current any = b
	for _, seg := range strings.Split(key, ".") {
		if seg == "" {
			return nil, false
		}
		val, ok := readField(current, seg)
		if !ok || !filled(val) {
			return nil, false
		}
		current = val
	}
	return current, true
}

// Dot flattens nested bags and sequences into a single-level bag whose keys
// use dot notation. Empty containers are kept as leaf values.
//
//	bag.FromMap(map[string]any{"a": map[string]any{"b": 1}}).Dot()
//	// → {"a.b": 1}
func (b *Bag) Dot() *Bag {
	out := Empty()
	dotFlatten("", b, out)
	return out
}

func dotFlatten(prefix string, v any, out *Bag) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch x := v.(type) {
	case *Bag:
		for k, val := range x.Items() {
			dotChild(join(k), val, out)
		}
	case []any:
		for i, val := range x {
			dotChild(join(strconv.Itoa(i)), val, out)
		}
	}
}

func dotChild(key string, val any, out *Bag) {
	switch x := val.(type) {
	case *Bag:
		if x.IsNotEmpty() {
			dotFlatten(key, x, out)
			return
		}
	case []any:
		if len(x) > 0 {
			dotFlatten(key, x, out)
			return
		}
	}
	out.set(key, val)
}
