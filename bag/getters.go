package bag

import (
	"strings"
	"unicode"

	"github.com/hasbyte1/go-parameterbag/filter"
)

// ─────────────────────────────────────────────────────────────────────────────
// Typed getters
//
// Getters never fail: a missing key, an empty value or a value that cannot
// be coerced degrades to the caller's default (or the zero value when no
// default is given). GetBoolean is the one exception, see its documentation.
// ─────────────────────────────────────────────────────────────────────────────

// GetString returns the value under key converted to a string. Containers
// and missing or empty values yield def[0] (or "").
func (b *Bag) GetString(key string, def ...string) string {
	s, ok := b.scalarString(key)
	if !ok {
		return defaultString(def)
	}
	return s
}

// GetAlpha returns the value under key with every character that is not a
// letter removed. Missing or empty values yield def[0] (or "") unmodified.
func (b *Bag) GetAlpha(key string, def ...string) string {
	s, ok := b.scalarString(key)
	if !ok {
		return defaultString(def)
	}
	return keepRunes(s, unicode.IsLetter)
}

// GetAlnum returns the value under key with every character that is not a
// letter or digit removed. Missing or empty values yield def[0] (or "")
// unmodified.
func (b *Bag) GetAlnum(key string, def ...string) string {
	s, ok := b.scalarString(key)
	if !ok {
		return defaultString(def)
	}
	return keepRunes(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
}

// GetDigits returns the value under key sanitized with [filter.SanitizeInt]
// and stripped of '+' and '-', leaving ASCII digits only. "-12.5" yields
// "125". Missing or empty values yield def[0] (or "") unmodified.
func (b *Bag) GetDigits(key string, def ...string) string {
	s, ok := b.scalarString(key)
	if !ok {
		return defaultString(def)
	}
	sanitized, _ := filter.Var(s, filter.SanitizeInt)
	digits, _ := sanitized.(string)
	return strings.NewReplacer("-", "", "+", "").Replace(digits)
}

// GetInt returns the value under key coerced to an int, or def[0] (or 0)
// when the key is absent.
//
// Coercion honours a leading numeric prefix ("42abc" → 42, " 7" → 7),
// truncates fractions and exponents toward zero ("1.9" → 1, "1e3" → 1000),
// turns non-numeric strings into 0 and saturates out-of-range values at
// math.MaxInt / math.MinInt. true is 1, false and nil are 0, a non-empty
// container is 1.
func (b *Bag) GetInt(key string, def ...int) int {
	v, ok := b.resolve(key)
	if !ok {
		if len(def) > 0 {
			return def[0]
		}
		return 0
	}
	return toInt(v)
}

// GetFloat returns the value under key coerced to a float64 with the same
// rules as [Bag.GetInt], or def[0] (or 0) when the key is absent.
func (b *Bag) GetFloat(key string, def ...float64) float64 {
	v, ok := b.resolve(key)
	if !ok {
		if len(def) > 0 {
			return def[0]
		}
		return 0
	}
	return toFloat(v)
}

// GetBoolean validates the value under key with [filter.Boolean].
// When the key is absent def[0] (or false) is validated instead.
//
// A present value that is not a recognised boolean ("maybe", "2", a
// container) yields false, not the default:
//
//	b := bag.New(bag.Entry{Key: "b", Value: "maybe"})
//	b.GetBoolean("b", true) // false
func (b *Bag) GetBoolean(key string, def ...bool) bool {
	var value any = false
	if len(def) > 0 {
		value = def[0]
	}
	if v, ok := b.resolve(key); ok {
		value = v
	}
	if filter.IsContainer(value) {
		return false
	}
	out, _ := filter.Var(value, filter.Boolean)
	result, _ := out.(bool)
	return result
}

// Filter resolves key like [Bag.Get] with def as the default and passes the
// value through [filter.Var].
//
// A bare [filter.Flag] is accepted as an option. When the value is a
// container and no flags were given, [filter.RequireArray] is added so the
// filter applies to each element:
//
//	b.Filter("tags", nil, filter.SanitizeInt) // ["1", "x", "3"] → ["1", "", "3"]
//
// The error wraps [ErrInvalidArgument] when the options do not suit kind.
func (b *Bag) Filter(key string, def any, kind filter.Kind, opts ...filter.Option) (any, error) {
	value := b.Get(key, def)
	if filter.IsContainer(value) && filter.Resolve(opts...).Flags == 0 {
		opts = append(opts[:len(opts):len(opts)], filter.RequireArray)
	}
	return filter.Var(value, kind, opts...)
}

func (b *Bag) scalarString(key string) (string, bool) {
	v, ok := b.resolve(key)
	if !ok || !filled(v) || filter.IsContainer(v) {
		return "", false
	}
	return filter.ToString(v)
}

func keepRunes(s string, keep func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func defaultString(def []string) string {
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
