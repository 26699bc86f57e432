// Package request wraps HTTP input into [bag.Bag] values.
//
// All request state is carried by an explicit [Context] rather than read
// from process globals, so the collectors can be tested without a live
// request:
//
//	rc := &request.Context{
//	    Server: map[string]string{"REQUEST_METHOD": "POST"},
//	    Post:   post,
//	}
//	data := request.Data(rc) // → post
//
// # Collecting from net/http
//
// [FromHTTP] builds a Context from an *http.Request: CGI-style server
// variables, the query string and form or JSON bodies, all parsed into
// ordered bags with PHP bracket semantics.
//
// # Middleware
//
// [Middleware] does this once per request and stores the result in the
// request context for downstream handlers:
//
//	mux.Handle("/", request.Middleware(request.DefaultConfig())(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    page := request.DataFromRequest(r).GetInt("page", 1)
//	}
package request
