package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind selects the filter applied by [Var].
type Kind int

const (
	// Raw passes values through unchanged.
	Raw Kind = iota

	// Boolean validates "1", "true", "on", "yes" as true and "0", "false",
	// "off", "no", "" as false, case-insensitively and ignoring surrounding
	// whitespace. Anything else fails.
	Boolean

	// Int validates a base-10 integer without leading zeros and returns it
	// as int64. Bounds are set with [WithRange].
	Int

	// Regexp returns the value as a string when it matches the pattern set
	// with [WithRegexp].
	Regexp

	// SanitizeInt removes every character except digits, '+' and '-'.
	SanitizeInt

	// Callback transforms the value with the callable set by [WithCallback].
	Callback
)

// String returns the filter name.
func (k Kind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Boolean:
		return "boolean"
	case Int:
		return "int"
	case Regexp:
		return "regexp"
	case SanitizeInt:
		return "sanitize_int"
	case Callback:
		return "callback"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Container is implemented by ordered, keyed collections whose elements can
// be filtered one by one. MapValues returns a copy of the container, of the
// same concrete type, with fn applied to every top-level value.
type Container interface {
	MapValues(fn func(any) any) any
}

// Var filters value with the given kind and options.
//
// The returned error is non-nil only when the options are unusable for kind;
// a value that fails validation yields the failure value described in
// the package documentation.
func Var(value any, kind Kind, opts ...Option) (any, error) {
	o := Resolve(opts...)
	fn, err := scalarFilter(kind, o)
	if err != nil {
		return nil, err
	}

	if IsContainer(value) {
		if kind != Callback && !o.Flags.Has(RequireArray) {
			return o.failure(), nil
		}
		return walk(value, fn), nil
	}
	if o.Flags.Has(RequireArray) {
		return o.failure(), nil
	}
	return fn(value), nil
}

// IsContainer reports whether v is a []any or a [Container].
func IsContainer(v any) bool {
	switch v.(type) {
	case []any, Container:
		return true
	}
	return false
}

func walk(v any, fn func(any) any) any {
	switch c := v.(type) {
	case []any:
		out := make([]any, len(c))
		for i, elem := range c {
			out[i] = walk(elem, fn)
		}
		return out
	case Container:
		return c.MapValues(func(elem any) any { return walk(elem, fn) })
	default:
		return fn(v)
	}
}

func (o Options) failure() any {
	if o.Default != nil {
		return o.Default
	}
	if o.Flags.Has(NullOnFailure) {
		return nil
	}
	return false
}

func scalarFilter(kind Kind, o Options) (func(any) any, error) {
	switch kind {
	case Raw:
		return func(v any) any { return v }, nil

	case Boolean:
		return func(v any) any {
			b, ok := ParseBool(v)
			if !ok {
				return o.failure()
			}
			return b
		}, nil

	case Int:
		return func(v any) any {
			n, ok := validateInt(v)
			if !ok || (o.Min != nil && n < *o.Min) || (o.Max != nil && n > *o.Max) {
				return o.failure()
			}
			return n
		}, nil

	case Regexp:
		if o.Regexp == nil {
			return nil, fmt.Errorf("%w: %s filter requires a regexp option", ErrInvalidArgument, kind)
		}
		return func(v any) any {
			s, ok := ToString(v)
			if !ok || !o.Regexp.MatchString(s) {
				return o.failure()
			}
			return s
		}, nil

	case SanitizeInt:
		return func(v any) any {
			s, ok := ToString(v)
			if !ok {
				return o.failure()
			}
			return strings.Map(func(r rune) rune {
				if (r >= '0' && r <= '9') || r == '+' || r == '-' {
					return r
				}
				return -1
			}, s)
		}, nil

	case Callback:
		return callbackOf(o.Callback)

	default:
		return nil, fmt.Errorf("%w: unknown filter %s", ErrInvalidArgument, kind)
	}
}

func callbackOf(cb any) (func(any) any, error) {
	switch fn := cb.(type) {
	case func(any) any:
		if fn != nil {
			return fn, nil
		}
	case func(string) any:
		if fn != nil {
			return func(v any) any {
				s, _ := ToString(v)
				return fn(s)
			}, nil
		}
	case func(string) string:
		if fn != nil {
			return func(v any) any {
				s, _ := ToString(v)
				return fn(s)
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: callback option must be a func(string) string, func(string) any or func(any) any, got %T",
		ErrInvalidArgument, cb)
}

// ParseBool applies the [Boolean] rules to v. The second result is false
// when v is not a recognised boolean representation.
func ParseBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	s, ok := ToString(v)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	}
	return false, false
}

func validateInt(v any) (int64, bool) {
	s, ok := ToString(v)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return 0, false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToString converts a scalar to its string form: nil is "", true is "1",
// false is "", numbers use the shortest decimal representation and
// [fmt.Stringer] values use their String method.
// The second result is false for containers and other non-scalar values.
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		if x {
			return "1", true
		}
		return "", true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return formatFloat(float64(x)), true
	case float64:
		return formatFloat(x), true
	case json.Number:
		return x.String(), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
