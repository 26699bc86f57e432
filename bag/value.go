package bag

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hasbyte1/go-parameterbag/filter"
)

// FieldReader is implemented by values that expose named attributes.
// [Bag.IndexBy] and dotted lookups read fields through it, so plain structs
// can take part without reflection:
//
//	type User struct{ ID, Name string }
//
//	func (u User) Field(name string) (any, bool) {
//	    switch name {
//	    case "id":
//	        return u.ID, true
//	    case "name":
//	        return u.Name, true
//	    }
//	    return nil, false
//	}
type FieldReader interface {
	Field(name string) (any, bool)
}

// normalize maps an input value onto the closed set of stored shapes.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int64, float64:
		return x
	case *Bag:
		if x == nil {
			return nil
		}
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return fromUint(x)
	case float32:
		return float64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = normalize(elem)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = elem
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = FromMap(elem)
		}
		return out
	case map[string]any:
		return FromMap(x)
	case map[string]string:
		b := &Bag{}
		for _, k := range sortedKeys(x) {
			b.set(k, x[k])
		}
		return b
	case []Entry:
		return New(x...)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	case FieldReader:
		return x
	}
	return normalizeKind(reflect.ValueOf(v), v)
}

// normalizeKind handles typed slices, string-keyed maps and named scalar
// types. Anything else is stored as is.
func normalizeKind(rv reflect.Value, v any) any {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		keys := make([]reflect.Value, 0, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			keys = append(keys, iter.Key())
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		b := &Bag{}
		for _, k := range keys {
			b.set(k.String(), normalize(rv.MapIndex(k).Interface()))
		}
		return b
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}

func fromUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// readField reads the attribute name from v according to its shape.
func readField(v any, name string) (any, bool) {
	switch x := v.(type) {
	case *Bag:
		return x.lookup(name)
	case []any:
		i, ok := index(name)
		if !ok || i >= len(x) {
			return nil, false
		}
		return x[i], true
	case FieldReader:
		return x.Field(name)
	}
	return nil, false
}

// index parses a canonical non-negative decimal sequence index.
func index(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// filled reports whether v carries data: not nil, not "", not an empty
// sequence and not an empty bag.
func filled(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case *Bag:
		return !x.IsEmpty()
	}
	return true
}

// keyString converts a field value into a bag key.
func keyString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	case float64:
		return strconv.FormatInt(toInt64(x), 10), true
	case *Bag, []any:
		return "", false
	}
	return filter.ToString(v)
}

// plain converts v into a tree of map[string]any and []any.
func plain(v any) any {
	switch x := v.(type) {
	case *Bag:
		return x.ToMap()
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = plain(elem)
		}
		return out
	}
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Numeric coercion
// ─────────────────────────────────────────────────────────────────────────────

// toInt converts v to an int following loose numeric coercion: a leading
// numeric prefix of a string is honoured, floats are truncated toward zero,
// non-numeric strings are 0 and out-of-range values saturate.
func toInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return clampInt(x)
	case float64:
		return clampInt(toInt64(x))
	case string:
		return clampInt(parseIntPrefix(x))
	case []any, *Bag:
		if filled(x) {
			return 1
		}
		return 0
	}
	if s, ok := filter.ToString(v); ok {
		return clampInt(parseIntPrefix(s))
	}
	return 0
}

// toFloat converts v to a float64 with the same rules as toInt.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return float64(x)
	case float64:
		return x
	case string:
		f, _ := parseFloatPrefix(x)
		return f
	case []any, *Bag:
		if filled(x) {
			return 1
		}
		return 0
	}
	if s, ok := filter.ToString(v); ok {
		f, _ := parseFloatPrefix(s)
		return f
	}
	return 0
}

func clampInt(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// numericPrefix returns the longest leading numeric literal of s after
// skipping leading whitespace, and whether it contains a fraction or
// exponent.
func numericPrefix(s string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	isFloat := false
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if intDigits > 0 || j > i+1 {
			i = j
			isFloat = true
		}
	}
	if i == start || (intDigits == 0 && !isFloat) {
		return "", false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
			isFloat = true
		}
	}
	return s[:i], isFloat
}

func parseIntPrefix(s string) int64 {
	p, isFloat := numericPrefix(s)
	if p == "" {
		return 0
	}
	if isFloat {
		f, _ := strconv.ParseFloat(p, 64)
		return toInt64(f)
	}
	// ParseInt returns the saturated bound on range errors.
	n, _ := strconv.ParseInt(p, 10, 64)
	return n
}

func parseFloatPrefix(s string) (float64, bool) {
	p, _ := numericPrefix(s)
	if p == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(p, 64)
	if err != nil && f == 0 {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
