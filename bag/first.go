package bag

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// First returns the first value in insertion order for which fn(key, value)
// returns true. Scanning stops at the first match. A nil fn matches the
// first entry. def[0] (or nil) is returned when nothing matches.
//
//	contact := contacts.First(nil)
//	admin := users.First(func(_ string, v any) bool {
//	    u, _ := v.(*bag.Bag)
//	    return u.Get("role") == "admin"
//	})
func (b *Bag) First(fn func(key string, value any) bool, def ...any) any {
	for k, v := range b.Items() {
		if fn == nil || fn(k, v) {
			return v
		}
	}
	return defaultOf(def)
}

// whereEnv is the environment FirstWhere expressions are evaluated in.
// Nested bags are exposed as map[string]any.
type whereEnv struct {
	Key   string `expr:"key"`
	Value any    `expr:"value"`
}

// FirstWhere is like [Bag.First] with the predicate written as an
// expr-lang expression over the variables key and value:
//
//	b.FirstWhere(`value.role == "admin"`)
//	b.FirstWhere(`key startsWith "tmp_" && value != nil`, "none")
//
// The expression is compiled once. A compile error, or an evaluation error
// on any entry, is returned wrapped in [ErrInvalidExpression].
func (b *Bag) FirstWhere(expression string, def ...any) (any, error) {
	program, err := expr.Compile(expression, expr.Env(whereEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	for k, v := range b.Items() {
		out, err := expr.Run(program, whereEnv{Key: k, Value: plain(v)})
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidExpression, k, err)
		}
		if matched, _ := out.(bool); matched {
			return v, nil
		}
	}
	return defaultOf(def), nil
}
