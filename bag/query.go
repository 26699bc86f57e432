package bag

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FromQuery parses a URL-encoded query string into a Bag the way PHP
// populates its request arrays:
//
//	a=1&b=2               → {"a": "1", "b": "2"}
//	user[name]=x          → {"user": {"name": "x"}}
//	tags[]=a&tags[]=b     → {"tags": ["a", "b"]}
//	first.name=x          → {"first_name": "x"}
//
// Leading spaces of the top-level name are dropped; remaining dots and spaces
// become underscores. Repeated keys keep the last value. Containers whose keys are exactly "0".."n-1" become
// sequences. Pairs with an empty name are skipped.
func FromQuery(query string) (*Bag, error) {
	root := Empty()
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrDecode, rawKey, err)
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrDecode, key, err)
		}

		name, path := splitQueryKey(key)
		if name == "" {
			continue
		}
		assign(root, append([]string{name}, path...), val)
	}
	listify(root)
	return root, nil
}

// FromValues is like [FromQuery] for already parsed values. url.Values has
// no order, so names are visited in sorted order.
func FromValues(values url.Values) (*Bag, error) {
	return FromQuery(values.Encode())
}

// splitQueryKey splits "a[b][]" into "a" and ["b", ""].
func splitQueryKey(key string) (string, []string) {
	key = strings.TrimLeft(key, " ")
	open := strings.IndexByte(key, '[')
	if open == 0 {
		return "", nil
	}
	if open < 0 || !strings.Contains(key[open:], "]") {
		return normalizeName(strings.ReplaceAll(key, "[", "_")), nil
	}

	name := normalizeName(key[:open])
	var path []string
	rest := key[open:]
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return name, path
}

func normalizeName(name string) string {
	return strings.NewReplacer(".", "_", " ", "_").Replace(name)
}

func assign(b *Bag, path []string, val string) {
	seg := path[0]
	if seg == "" {
		seg = strconv.Itoa(nextIndex(b))
	}
	if len(path) == 1 {
		b.set(seg, val)
		return
	}
	child, ok := b.values[seg].(*Bag)
	if !ok {
		child = Empty()
		b.set(seg, child)
	}
	assign(child, path[1:], val)
}

// nextIndex returns one past the highest integer key of b.
func nextIndex(b *Bag) int {
	next := 0
	for _, k := range b.keys {
		if i, ok := index(k); ok && i >= next {
			next = i + 1
		}
	}
	return next
}

// listify turns nested bags keyed "0".."n-1" in order into sequences.
func listify(b *Bag) {
	for _, k := range b.keys {
		child, ok := b.values[k].(*Bag)
		if !ok {
			continue
		}
		listify(child)
		if sequential(child) {
			b.values[k] = child.listValues()
		}
	}
}

func sequential(b *Bag) bool {
	if b.IsEmpty() {
		return false
	}
	for i, k := range b.keys {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func (b *Bag) listValues() []any {
	out := make([]any, len(b.keys))
	for i, k := range b.keys {
		out[i] = b.values[k]
	}
	return out
}
