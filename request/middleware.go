package request

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Middleware is a net/http-compatible middleware that collects the request
// input with [FromHTTP] and injects both the [Context] and the result of
// [Data] into the request context. On failure it writes a JSON error
// response and stops the chain: 413 for [ErrBodyTooLarge], 400 otherwise.
//
// Use [DataFromRequest] or [FromContext] in downstream handlers.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, err := FromHTTP(r, cfg)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("rejecting request input", "method", r.Method, "path", r.URL.Path, "err", err)
				}
				writeJSONError(w, errStatus(err), err.Error())
				return
			}
			ctx := WithContext(r.Context(), rc)
			ctx = WithData(ctx, Data(rc))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func errStatus(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
