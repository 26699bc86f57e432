package request

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/hasbyte1/go-parameterbag/bag"
)

// Context holds the input of a single request.
//
// Server uses CGI variable names (REQUEST_METHOD, QUERY_STRING, HTTP_HOST...).
// Query and Post hold the query string and body parameters; Request is the
// combined fallback used when the method cannot be determined. Any bag may
// be nil.
type Context struct {
	Server  map[string]string
	Query   *bag.Bag
	Post    *bag.Bag
	Request *bag.Bag

	// Route holds path parameters captured by a router, if any.
	Route map[string]string

	// Logger receives debug events. Nil disables logging.
	Logger *log.Logger
}

func (rc *Context) debug(msg string, keyvals ...any) {
	if rc.Logger != nil {
		rc.Logger.Debug(msg, keyvals...)
	}
}

type contextKey int

const (
	dataContextKey contextKey = iota
	requestContextKey
)

// WithData returns a copy of ctx that carries the given bag.
func WithData(ctx context.Context, data *bag.Bag) context.Context {
	return context.WithValue(ctx, dataContextKey, data)
}

// DataFromContext retrieves the bag stored in ctx.
// Returns an empty bag if none has been attached.
func DataFromContext(ctx context.Context) *bag.Bag {
	if data, ok := ctx.Value(dataContextKey).(*bag.Bag); ok && data != nil {
		return data
	}
	return bag.Empty()
}

// DataFromRequest retrieves the bag from the request's context.
// Returns an empty bag if the [Middleware] has not run.
func DataFromRequest(r *http.Request) *bag.Bag {
	return DataFromContext(r.Context())
}

// WithContext returns a copy of ctx that carries rc.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext retrieves the [Context] stored in ctx, or nil.
func FromContext(ctx context.Context) *Context {
	rc, _ := ctx.Value(requestContextKey).(*Context)
	return rc
}
