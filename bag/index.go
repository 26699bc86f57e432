package bag

import "fmt"

// IndexBy re-keys the bag by the field key read from each value and
// returns the bag for chaining.
//
// Fields are read from nested bags by key, from sequences by index and from
// [FieldReader] values by attribute. Values without a filled, scalar field
// are dropped. When two values share a derived key the later one wins and
// keeps the position of the first.
//
// An empty bag is returned unchanged. If no value exposes the field the
// store is left untouched and the error wraps [ErrKeyNotFound].
//
//	users := bag.FromSlice([]any{
//	    map[string]any{"id": 1, "name": "a"},
//	    map[string]any{"id": 2, "name": "b"},
//	})
//	users.IndexBy("id") // → {"1": {...}, "2": {...}}
func (b *Bag) IndexBy(key string) (*Bag, error) {
	if b.IsEmpty() {
		return b, nil
	}

	indexed := &Bag{values: make(map[string]any, b.Count())}
	for _, v := range b.Items() {
		field, ok := readField(v, key)
		if !ok || !filled(field) {
			continue
		}
		newKey, ok := keyString(field)
		if !ok {
			continue
		}
		indexed.set(newKey, v)
	}

	if indexed.IsEmpty() {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	b.keys, b.values = indexed.keys, indexed.values
	return b, nil
}
