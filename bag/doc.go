// Package bag provides [Bag], an ordered, string-keyed container for loosely
// typed request data, with the accessor API of a PHP-style parameter bag:
// dot-notation lookups, coercing getters, filtering, first-match search and
// re-indexing.
//
// # Building a bag
//
//	b := bag.New(
//	    bag.Entry{Key: "page", Value: "2"},
//	    bag.Entry{Key: "user", Value: map[string]any{"name": "Alice"}},
//	)
//	b, err := bag.FromJSON(body)          // key order of the document
//	b, err := bag.FromQuery("tags[]=a&q=x") // PHP bracket syntax
//
// # Reading values
//
// Every accessor treats a missing value as a miss and returns the
// caller's default instead of failing:
//
//	b.Get("user.name")         // "Alice"
//	b.Get("user.age", 18)      // 18
//	b.GetInt("page")           // 2
//	b.GetAlpha("code", "none") // letters only
//	b.GetBoolean("subscribe")  // "yes" → true
//
// A key containing a dot is always treated as a path. Every segment must
// exist and hold a filled value (not nil, "", or an empty container);
// leading, trailing or doubled dots never match. A literal top-level key
// that contains a dot is therefore only reachable through [Bag.All] or
// [Bag.Items].
//
// # Value shapes
//
// Nested mappings are stored as *Bag, sequences as []any. Accessors return
// stored containers as they are; [Bag.GetBag] projects a sequence into a
// bag explicitly. Values implementing [FieldReader] expose attributes to
// dotted lookups and [Bag.IndexBy].
//
// # Errors
//
// Only [Bag.IndexBy] ([ErrKeyNotFound]), [Bag.Filter] ([ErrInvalidArgument]),
// [Bag.FirstWhere] ([ErrInvalidExpression]) and the decoders ([ErrDecode])
// return errors.
package bag
