package request

import (
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/hasbyte1/go-parameterbag/bag"
	"github.com/hasbyte1/go-parameterbag/filter"
)

var methodPattern = regexp.MustCompile(`^(?i:get|post)$`)

// Data returns the parameters of the request described by rc.
//
// REQUEST_METHOD must be exactly GET or POST, in any case. POST selects the
// body parameters, GET the query string. Any other method falls back to
// rc.Request, or an empty bag when that is nil too. Methods that merely
// contain get or post, such as "forget", are not matched.
func Data(rc *Context) *bag.Bag {
	if rc == nil {
		return bag.Empty()
	}

	v, _ := ServerValue(rc, "REQUEST_METHOD", filter.Regexp, filter.WithRegexp(methodPattern))
	method, _ := v.(string)

	var data *bag.Bag
	switch {
	case method == "":
		rc.debug("request method undetermined, using combined input", "method", rc.Server["REQUEST_METHOD"])
		data = rc.Request
	case strings.EqualFold(method, http.MethodPost):
		rc.debug("using body parameters", "method", method)
		data = rc.Post
	default:
		rc.debug("using query parameters", "method", method)
		data = rc.Query
	}
	if data == nil {
		return bag.Empty()
	}
	return data
}

// ServerValue filters the server variable name with kind.
//
// It returns nil when the variable is absent or empty. Without options the
// value is filtered with [filter.NullOnFailure].
func ServerValue(rc *Context, name string, kind filter.Kind, opts ...filter.Option) (any, error) {
	if rc == nil {
		return nil, nil
	}
	v, ok := rc.Server[name]
	if !ok || v == "" {
		return nil, nil
	}
	if len(opts) == 0 {
		opts = []filter.Option{filter.NullOnFailure}
	}
	return filter.Var(v, kind, opts...)
}

// WithRouteParams records params on rc and merges them, sorted by name,
// into rc.Request. Route parameters overwrite query and body values of the
// same name.
func WithRouteParams(rc *Context, params map[string]string) {
	if rc == nil || len(params) == 0 {
		return
	}
	rc.Route = maps.Clone(params)

	entries := make([]bag.Entry, 0, len(params))
	for _, name := range slices.Sorted(maps.Keys(params)) {
		entries = append(entries, bag.Entry{Key: name, Value: params[name]})
	}
	route := bag.New(entries...)

	if rc.Request == nil {
		rc.Request = route
		return
	}
	rc.Request = bag.Merge(rc.Request, route)
}
