package request

import "errors"

var (
	// ErrBodyTooLarge is returned when a request body exceeds
	// [Config.MaxBodyBytes].
	ErrBodyTooLarge = errors.New("request: body too large")

	// ErrMalformedBody is returned when a form or JSON body cannot be parsed.
	ErrMalformedBody = errors.New("request: malformed body")

	// ErrMalformedQuery is returned when the query string cannot be parsed.
	ErrMalformedQuery = errors.New("request: malformed query string")
)
