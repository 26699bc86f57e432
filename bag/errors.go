package bag

import (
	"errors"

	"github.com/hasbyte1/go-parameterbag/filter"
)

// Sentinel errors returned by Bag operations.
//
// Use [errors.Is] for comparisons:
//
//	if _, err := b.IndexBy("id"); errors.Is(err, bag.ErrKeyNotFound) {
//	    // no element exposes "id"
//	}
var (
	// ErrKeyNotFound is returned by [Bag.IndexBy] when no element exposes a
	// filled value for the requested key.
	ErrKeyNotFound = errors.New("bag: key not found")

	// ErrInvalidArgument is returned by [Bag.Filter] when the filter options
	// are unusable, for instance a callback filter without a callable.
	// It is the same value as [filter.ErrInvalidArgument].
	ErrInvalidArgument = filter.ErrInvalidArgument

	// ErrInvalidExpression is returned by [Bag.FirstWhere] when the
	// predicate expression does not compile or does not yield a boolean.
	ErrInvalidExpression = errors.New("bag: invalid expression")

	// ErrDecode is returned by the From* decoders when the input is
	// malformed or its root is not a mapping or sequence.
	ErrDecode = errors.New("bag: cannot decode input")
)
