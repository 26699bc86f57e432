package filter

import "errors"

// ErrInvalidArgument is returned by [Var] when the options cannot be used
// with the requested filter, such as a [Callback] filter without a callable
// or a [Regexp] filter without a pattern.
var ErrInvalidArgument = errors.New("filter: invalid argument")
