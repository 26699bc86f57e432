package bag

import (
	"iter"
	"strconv"
	"strings"
)

// Entry is a single key/value pair of a [Bag].
type Entry struct {
	Key   string
	Value any
}

// Bag is an ordered, string-keyed container of loosely typed values.
//
// Values are scalars (nil, string, bool, int64, float64), sequences ([]any),
// nested mappings (*Bag) or attribute-bearing values ([FieldReader]).
// Inputs are normalised on the way in: Go integer kinds widen to int64,
// map[string]any becomes a *Bag with its keys sorted, []string becomes []any.
//
// Accessors never modify the store. Nested containers they return are the
// stored instances, not copies; treat them as read-only. [Bag.IndexBy] is the
// only operation that replaces the store.
//
// A Bag is not safe for concurrent mutation. The zero value is an empty bag
// ready to use.
type Bag struct {
	keys   []string
	values map[string]any
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// New creates a Bag from entries in the given order. A repeated key
// overwrites the earlier value and keeps the earlier position.
func New(entries ...Entry) *Bag {
	b := &Bag{values: make(map[string]any, len(entries))}
	for _, e := range entries {
		b.set(e.Key, normalize(e.Value))
	}
	return b
}

// FromMap creates a Bag from m. Go maps carry no order, so keys are
// inserted in sorted order. Nested maps are converted recursively.
func FromMap(m map[string]any) *Bag {
	b := &Bag{values: make(map[string]any, len(m))}
	for _, k := range sortedKeys(m) {
		b.set(k, normalize(m[k]))
	}
	return b
}

// FromSlice creates a Bag keyed by the decimal index of each item
// ("0", "1", …).
func FromSlice(items []any) *Bag {
	b := &Bag{values: make(map[string]any, len(items))}
	for i, item := range items {
		b.set(strconv.Itoa(i), normalize(item))
	}
	return b
}

// Empty creates an empty Bag.
func Empty() *Bag {
	return &Bag{values: map[string]any{}}
}

func (b *Bag) set(key string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// All returns a shallow copy of every entry in insertion order.
func (b *Bag) All() []Entry {
	if b == nil {
		return []Entry{}
	}
	out := make([]Entry, len(b.keys))
	for i, k := range b.keys {
		out[i] = Entry{Key: k, Value: b.values[k]}
	}
	return out
}

// Items returns an iterator over the entries in insertion order.
func (b *Bag) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if b == nil {
			return
		}
		for _, k := range b.keys {
			if !yield(k, b.values[k]) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (b *Bag) Keys() []string {
	if b == nil {
		return []string{}
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// ToMap returns the content as nested map[string]any and []any values.
// Order is lost.
func (b *Bag) ToMap() map[string]any {
	if b == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(b.keys))
	for _, k := range b.keys {
		out[k] = plain(b.values[k])
	}
	return out
}

// Count returns the number of top-level entries.
func (b *Bag) Count() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// IsEmpty reports whether the bag has no entries.
func (b *Bag) IsEmpty() bool { return b.Count() == 0 }

// IsNotEmpty reports whether the bag has at least one entry.
func (b *Bag) IsNotEmpty() bool { return b.Count() > 0 }

func (b *Bag) lookup(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// resolve finds key, descending through nested levels when key contains
// a dot.
func (b *Bag) resolve(key string) (any, bool) {
	if b.IsEmpty() {
		return nil, false
	}
	if strings.Contains(key, ".") {
		return b.resolvePath(key)
	}
	return b.lookup(key)
}

// Get returns the value stored under key, or def[0] (nil when omitted) if
// the bag is empty or the key is absent. A stored nil or empty value is
// returned as is.
//
// A key containing a dot is resolved as a path through nested bags,
// sequences and [FieldReader] values; see the package documentation for
// the rules.
//
//	b.Get("name")              // stored value or nil
//	b.Get("user.address.city") // nested lookup
//	b.Get("missing", "guest")  // "guest"
func (b *Bag) Get(key string, def ...any) any {
	if v, ok := b.resolve(key); ok {
		return v
	}
	return defaultOf(def)
}

// Lookup returns the value stored under key together with a presence flag,
// with the same key rules as [Bag.Get].
func (b *Bag) Lookup(key string) (any, bool) { return b.resolve(key) }

// Has reports whether key resolves to a value.
func (b *Bag) Has(key string) bool {
	_, ok := b.resolve(key)
	return ok
}

// GetFilled is like [Bag.Get] but also falls back to the default when the
// stored value is nil, "", an empty sequence or an empty bag.
func (b *Bag) GetFilled(key string, def ...any) any {
	if v, ok := b.resolve(key); ok && filled(v) {
		return v
	}
	return defaultOf(def)
}

// GetBag returns the container stored under key as a Bag. A nested bag is
// returned as is, a sequence is wrapped with [FromSlice]. Any other value
// yields an empty bag.
func (b *Bag) GetBag(key string) *Bag {
	v, _ := b.resolve(key)
	switch x := v.(type) {
	case *Bag:
		return x
	case []any:
		return FromSlice(x)
	}
	return Empty()
}

// ─────────────────────────────────────────────────────────────────────────────
// Projections
// ─────────────────────────────────────────────────────────────────────────────

// Only returns a new bag with only the given top-level keys, in the order
// the keys are listed. Dotted keys are not expanded.
func (b *Bag) Only(keys ...string) *Bag {
	out := &Bag{values: make(map[string]any, len(keys))}
	for _, k := range keys {
		if v, ok := b.lookup(k); ok {
			out.set(k, v)
		}
	}
	return out
}

// Except returns a new bag without the given top-level keys.
func (b *Bag) Except(keys ...string) *Bag {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := &Bag{values: make(map[string]any, b.Count())}
	for k, v := range b.Items() {
		if _, skip := drop[k]; !skip {
			out.set(k, v)
		}
	}
	return out
}

// MapValues returns a new bag with fn applied to every top-level value.
// The result is a *Bag; the any return type satisfies [filter.Container].
func (b *Bag) MapValues(fn func(any) any) any {
	out := &Bag{values: make(map[string]any, b.Count())}
	for k, v := range b.Items() {
		out.set(k, normalize(fn(v)))
	}
	return out
}

// Merge returns a new bag holding the entries of every bag in order.
// Later values overwrite earlier ones; when both values are bags they are
// merged recursively. Positions of existing keys are kept.
func Merge(bags ...*Bag) *Bag {
	out := Empty()
	for _, src := range bags {
		mergeInto(out, src)
	}
	return out
}

func mergeInto(dst, src *Bag) {
	for k, srcVal := range src.Items() {
		if dstVal, ok := dst.lookup(k); ok {
			dstBag, dstIsBag := dstVal.(*Bag)
			srcBag, srcIsBag := srcVal.(*Bag)
			if dstIsBag && srcIsBag {
				merged := Empty()
				mergeInto(merged, dstBag)
				mergeInto(merged, srcBag)
				dst.set(k, merged)
				continue
			}
		}
		dst.set(k, srcVal)
	}
}

// String returns the JSON representation of the bag.
// It implements [fmt.Stringer].
func (b *Bag) String() string {
	data, err := b.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func defaultOf(def []any) any {
	if len(def) > 0 {
		return def[0]
	}
	return nil
}
