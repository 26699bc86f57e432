// Package filter validates and sanitizes loosely typed input values, in the
// spirit of PHP's filter_var.
//
// A filter is selected by [Kind] and tuned with options:
//
//	filter.Var("yes", filter.Boolean)                        // → true
//	filter.Var("maybe", filter.Boolean)                      // → false
//	filter.Var("maybe", filter.Boolean, filter.NullOnFailure) // → nil
//	filter.Var("+12-3", filter.SanitizeInt)                  // → "+12-3"
//	filter.Var("GET", filter.Regexp, filter.WithRegexp(re))  // → "GET" or false
//
// # Failure values
//
// Validating filters ([Boolean], [Int], [Regexp]) report failure in-band:
// the result is false, or nil when [NullOnFailure] is set, or the value
// supplied with [WithDefault]. Sanitizing filters never fail on scalars.
// An error is only returned for unusable options, see [ErrInvalidArgument].
//
// # Containers
//
// With [RequireArray] the filter is applied to every element of a []any or
// of any value implementing [Container], recursively. Without it a container
// input is a failure, and with it a scalar input is a failure.
// [Callback] always walks containers element-wise.
package filter
