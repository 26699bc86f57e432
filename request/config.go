package request

import (
	"context"

	"github.com/charmbracelet/log"
)

// Config holds the settings used by [FromHTTP] and [Middleware].
type Config struct {
	// MaxBodyBytes caps the number of body bytes read for form and JSON
	// bodies. Defaults to 10 MiB if zero or negative.
	MaxBodyBytes int64

	// ParseJSON enables decoding application/json bodies into the POST bag.
	ParseJSON bool

	// RouteParams, when set, is called with the request context to obtain
	// path parameters extracted by a router. They are stored in
	// [Context.Route].
	RouteParams func(ctx context.Context) map[string]string

	// Logger receives debug events. Nil disables logging.
	Logger *log.Logger
}

const defaultMaxBodyBytes = 10 << 20

// DefaultConfig returns a [Config] populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes: defaultMaxBodyBytes,
		ParseJSON:    true,
	}
}

func (c Config) maxBodyBytes() int64 {
	if c.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return c.MaxBodyBytes
}
