package bag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hasbyte1/go-parameterbag/bag"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func entries(kv ...any) *bag.Bag {
	es := make([]bag.Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		es = append(es, bag.Entry{Key: kv[i].(string), Value: kv[i+1]})
	}
	return bag.New(es...)
}

func assertKeys(t *testing.T, b *bag.Bag, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, b.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func TestNewKeepsOrder(t *testing.T) {
	b := entries("z", 1, "a", 2, "m", 3)
	assertKeys(t, b, "z", "a", "m")
}

func TestNewRepeatedKeyKeepsFirstPosition(t *testing.T) {
	b := entries("x", 1, "y", 2, "x", 3)
	assertKeys(t, b, "x", "y")
	if got := b.Get("x"); got != int64(3) {
		t.Fatalf("Get(x) = %#v; want 3", got)
	}
}

func TestFromMapSortsKeysAndNests(t *testing.T) {
	b := bag.FromMap(map[string]any{
		"b": 1,
		"a": map[string]any{"y": "2", "x": "1"},
	})
	assertKeys(t, b, "a", "b")
	nested, ok := b.Get("a").(*bag.Bag)
	if !ok {
		t.Fatalf("Get(a) = %T; want *bag.Bag", b.Get("a"))
	}
	assertKeys(t, nested, "x", "y")
}

func TestFromSlice(t *testing.T) {
	b := bag.FromSlice([]any{"a", "b"})
	assertKeys(t, b, "0", "1")
	if b.Get("1") != "b" {
		t.Fatalf("Get(1) = %v; want b", b.Get("1"))
	}
}

func TestNormalizesIntegers(t *testing.T) {
	b := entries("i", 7, "u", uint8(3), "f", float32(1.5))
	if b.Get("i") != int64(7) || b.Get("u") != int64(3) || b.Get("f") != float64(1.5) {
		t.Fatalf("normalisation failed: %v", b.All())
	}
}

type role string

func TestNormalizesTypedContainers(t *testing.T) {
	b := bag.FromMap(map[string]any{
		"ids":   []int{1, 2},
		"flags": []bool{true},
		"m":     map[string]int{"b": 2, "a": 1},
		"role":  role("admin"),
		"raw":   []byte("x"),
	})
	if got := b.Get("ids.0", "D"); got != int64(1) {
		t.Fatalf("Get(ids.0) = %#v; want 1", got)
	}
	if got := b.Get("m.a", "D"); got != int64(1) {
		t.Fatalf("Get(m.a) = %#v; want 1", got)
	}
	assertKeys(t, b.GetBag("m"), "a", "b")
	if diff := cmp.Diff([]any{true}, b.Get("flags")); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}
	if b.Get("role") != "admin" || b.Get("raw") != "x" {
		t.Fatalf("role = %#v, raw = %#v; want plain strings", b.Get("role"), b.Get("raw"))
	}
	if got := b.GetString("ids", "D"); got != "D" {
		t.Fatalf("GetString(ids) = %q; want default for a sequence", got)
	}
}

func TestZeroValueBag(t *testing.T) {
	var b bag.Bag
	if !b.IsEmpty() {
		t.Fatal("zero Bag should be empty")
	}
	if got := b.Get("x", "d"); got != "d" {
		t.Fatalf("Get on zero Bag = %v; want d", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// All / IsEmpty
// ─────────────────────────────────────────────────────────────────────────────

func TestAllIsShallowCopy(t *testing.T) {
	b := entries("a", 1, "b", 2)
	all := b.All()
	all[0].Value = "changed"
	if b.Get("a") != int64(1) {
		t.Fatal("mutating All() result changed the bag")
	}
	want := []bag.Entry{{Key: "a", Value: int64(1)}, {Key: "b", Value: int64(2)}}
	if diff := cmp.Diff(want, b.All()); diff != "" {
		t.Fatalf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestAllIsIdempotent(t *testing.T) {
	b := entries("a", 1, "nested", map[string]any{"x": "y"})
	first, second := b.All(), b.All()
	if len(first) != len(second) {
		t.Fatalf("All lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key != second[i].Key || first[i].Value != second[i].Value {
			t.Fatalf("entry %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestIsEmptyMatchesAll(t *testing.T) {
	for _, b := range []*bag.Bag{bag.Empty(), entries("a", nil)} {
		if b.IsEmpty() != (len(b.All()) == 0) {
			t.Fatalf("IsEmpty = %v but len(All) = %d", b.IsEmpty(), len(b.All()))
		}
	}
}

func TestItemsStopsEarly(t *testing.T) {
	b := entries("a", 1, "b", 2, "c", 3)
	var seen []string
	for k := range b.Items() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Get family
// ─────────────────────────────────────────────────────────────────────────────

func TestGetExistingAndMissing(t *testing.T) {
	b := entries("name", "Alice", "empty", "", "null", nil)
	if got := b.Get("name"); got != "Alice" {
		t.Fatalf("Get(name) = %v; want Alice", got)
	}
	if got := b.Get("missing", "D"); got != "D" {
		t.Fatalf("Get(missing) = %v; want D", got)
	}
	if got := b.Get("missing"); got != nil {
		t.Fatalf("Get(missing) = %v; want nil", got)
	}
	if got := b.Get("empty", "D"); got != "" {
		t.Fatalf("Get(empty) = %#v; want stored empty string", got)
	}
	if got := b.Get("null", "D"); got != nil {
		t.Fatalf("Get(null) = %#v; want stored nil", got)
	}
}

func TestGetOnEmptyBagReturnsDefault(t *testing.T) {
	if got := bag.Empty().Get("a", 5); got != 5 {
		t.Fatalf("Get on empty = %v; want 5", got)
	}
}

func TestGetFilled(t *testing.T) {
	b := entries("empty", "", "null", nil, "list", []any{}, "zero", 0, "no", false)
	for _, key := range []string{"empty", "null", "list", "missing"} {
		if got := b.GetFilled(key, "D"); got != "D" {
			t.Errorf("GetFilled(%s) = %#v; want D", key, got)
		}
	}
	if got := b.GetFilled("zero", "D"); got != int64(0) {
		t.Errorf("GetFilled(zero) = %#v; want 0", got)
	}
	if got := b.GetFilled("no", "D"); got != false {
		t.Errorf("GetFilled(no) = %#v; want false", got)
	}
}

func TestLookupAndHas(t *testing.T) {
	b := entries("a", nil)
	if v, ok := b.Lookup("a"); !ok || v != nil {
		t.Fatalf("Lookup(a) = %v, %v; want nil, true", v, ok)
	}
	if b.Has("b") {
		t.Fatal("Has(b) should be false")
	}
}

func TestGetBag(t *testing.T) {
	b := entries("list", []any{"x", "y"}, "scalar", "s", "map", map[string]any{"k": "v"})
	if got := b.GetBag("list").Get("1"); got != "y" {
		t.Fatalf("GetBag(list).Get(1) = %v; want y", got)
	}
	if !b.GetBag("scalar").IsEmpty() {
		t.Fatal("GetBag(scalar) should be empty")
	}
	if got := b.GetBag("map").Get("k"); got != "v" {
		t.Fatalf("GetBag(map).Get(k) = %v; want v", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Projections
// ─────────────────────────────────────────────────────────────────────────────

func TestOnly(t *testing.T) {
	b := entries("a", 1, "b", 2, "c", 3)
	assertKeys(t, b.Only("c", "a", "missing"), "c", "a")
}

func TestExcept(t *testing.T) {
	b := entries("a", 1, "b", 2, "c", 3)
	assertKeys(t, b.Except("b"), "a", "c")
	assertKeys(t, b, "a", "b", "c")
}

func TestMerge(t *testing.T) {
	get := entries("page", "1", "filter", map[string]any{"a": "x"})
	post := entries("page", "2", "filter", map[string]any{"b": "y"}, "q", "z")
	merged := bag.Merge(get, post)
	assertKeys(t, merged, "page", "filter", "q")
	if merged.Get("page") != "2" {
		t.Fatalf("Merge page = %v; want 2", merged.Get("page"))
	}
	if merged.Get("filter.a") != "x" || merged.Get("filter.b") != "y" {
		t.Fatalf("Merge filter = %v", merged.Get("filter"))
	}
	if get.Get("filter").(*bag.Bag).Has("b") {
		t.Fatal("Merge mutated its input")
	}
}

func TestToMap(t *testing.T) {
	b := entries("a", map[string]any{"b": []any{map[string]any{"c": 1}}})
	want := map[string]any{"a": map[string]any{"b": []any{map[string]any{"c": int64(1)}}}}
	if diff := cmp.Diff(want, b.ToMap()); diff != "" {
		t.Fatalf("ToMap mismatch (-want +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	b := entries("z", 1, "a", []any{"x", true})
	if got := b.String(); got != `{"z":1,"a":["x",true]}` {
		t.Fatalf("String = %s", got)
	}
}

func TestChecksum(t *testing.T) {
	a, err := entries("x", 1, "y", 2).Checksum()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := entries("x", 1, "y", 2).Checksum()
	c, _ := entries("y", 2, "x", 1).Checksum()
	if a != b {
		t.Fatal("equal bags should share a checksum")
	}
	if a == c {
		t.Fatal("order should affect the checksum")
	}
	if len(a) != 64 {
		t.Fatalf("checksum length = %d; want 64", len(a))
	}
}
