package filter

import "regexp"

// Flag tunes how [Var] treats containers and failures.
//
// A Flag is itself an [Option], so a bare flag can be passed wherever options
// are expected:
//
//	filter.Var(v, filter.Boolean, filter.NullOnFailure)
type Flag uint

const (
	// NullOnFailure makes validating filters return nil instead of false.
	NullOnFailure Flag = 1 << iota

	// RequireScalar rejects container inputs. It is the implicit behaviour
	// when RequireArray is not set and only documents intent.
	RequireScalar

	// RequireArray applies the filter to every element of a container and
	// rejects scalar inputs.
	RequireArray
)

func (f Flag) apply(o *Options) { o.Flags |= f }

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool { return f&other == other }

// Option configures a single [Var] call.
type Option interface {
	apply(*Options)
}

// Options is the structured form of the filter options.
// An Options value is itself an [Option]; its non-zero fields are merged over
// the options collected so far.
type Options struct {
	// Flags is the combination of [Flag] values in effect.
	Flags Flag

	// Default, when non-nil, is returned instead of false or nil on failure.
	Default any

	// Regexp is the pattern used by the [Regexp] filter.
	Regexp *regexp.Regexp

	// Min and Max bound the [Int] filter. Nil means unbounded.
	Min, Max *int64

	// Callback is the callable used by the [Callback] filter. Accepted
	// signatures are func(string) string, func(string) any and func(any) any.
	Callback any
}

func (o Options) apply(dst *Options) {
	dst.Flags |= o.Flags
	if o.Default != nil {
		dst.Default = o.Default
	}
	if o.Regexp != nil {
		dst.Regexp = o.Regexp
	}
	if o.Min != nil {
		dst.Min = o.Min
	}
	if o.Max != nil {
		dst.Max = o.Max
	}
	if o.Callback != nil {
		dst.Callback = o.Callback
	}
}

type optionFunc func(*Options)

func (fn optionFunc) apply(o *Options) { fn(o) }

// WithRegexp sets the pattern for the [Regexp] filter.
func WithRegexp(re *regexp.Regexp) Option {
	return optionFunc(func(o *Options) { o.Regexp = re })
}

// WithCallback sets the callable for the [Callback] filter.
// The signature is checked when the filter runs.
func WithCallback(fn any) Option {
	return optionFunc(func(o *Options) { o.Callback = fn })
}

// WithRange bounds the [Int] filter to [min, max].
func WithRange(min, max int64) Option {
	return optionFunc(func(o *Options) {
		o.Min = &min
		o.Max = &max
	})
}

// WithDefault sets the value returned when a validating filter fails.
func WithDefault(v any) Option {
	return optionFunc(func(o *Options) { o.Default = v })
}

// Resolve folds opts into a single [Options] value.
func Resolve(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	return o
}
