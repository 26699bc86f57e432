package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-parameterbag/bag"
)

// FromHTTP collects the input of r into a [Context].
//
// The query string always fills Query. For methods other than GET and HEAD
// the body fills Post when its media type is one of:
//
//	application/x-www-form-urlencoded
//	multipart/form-data          (value parts only)
//	application/json             (when cfg.ParseJSON is set)
//
// Request holds Query merged with Post, then any route parameters. Form and
// JSON bodies are restored on r so later handlers can read them again.
func FromHTTP(r *http.Request, cfg Config) (*Context, error) {
	rc := &Context{Server: serverVars(r), Logger: cfg.Logger}

	query, err := bag.FromQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
	}
	rc.Query = query

	post := bag.Empty()
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if post, err = readBody(r, cfg); err != nil {
			return nil, err
		}
	}
	rc.Post = post
	rc.Request = bag.Merge(query, post)

	if cfg.RouteParams != nil {
		WithRouteParams(rc, cfg.RouteParams(r.Context()))
	}
	rc.debug("collected request input",
		"method", r.Method, "query", query.Count(), "post", post.Count(), "route", len(rc.Route))
	return rc, nil
}

func readBody(r *http.Request, cfg Config) (*bag.Bag, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return bag.Empty(), nil
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return bag.Empty(), nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: content type %q", ErrMalformedBody, ct)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		data, err := readLimited(r, cfg.maxBodyBytes())
		if err != nil {
			return nil, err
		}
		post, err := bag.FromQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return post, nil

	case mediaType == "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodyBytes())
		if err := r.ParseMultipartForm(cfg.maxBodyBytes()); err != nil {
			if tooLarge(err) {
				return nil, ErrBodyTooLarge
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		post, err := bag.FromValues(r.MultipartForm.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return post, nil

	case cfg.ParseJSON && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")):
		data, err := readLimited(r, cfg.maxBodyBytes())
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return bag.Empty(), nil
		}
		post, err := bag.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return post, nil
	}
	return bag.Empty(), nil
}

// readLimited reads at most limit bytes of the body and puts them back on r.
func readLimited(r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	_ = r.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// serverVars maps r onto CGI meta-variables.
func serverVars(r *http.Request) map[string]string {
	vars := map[string]string{
		"REQUEST_METHOD":  r.Method,
		"REQUEST_URI":     r.URL.RequestURI(),
		"QUERY_STRING":    r.URL.RawQuery,
		"PATH_INFO":       r.URL.Path,
		"SERVER_PROTOCOL": r.Proto,
	}
	if r.RequestURI != "" {
		vars["REQUEST_URI"] = r.RequestURI
	}

	if host, port, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		vars["REMOTE_ADDR"] = host
		vars["REMOTE_PORT"] = port
	} else if r.RemoteAddr != "" {
		vars["REMOTE_ADDR"] = r.RemoteAddr
	}

	if r.Host != "" {
		vars["HTTP_HOST"] = r.Host
		if host, port, err := net.SplitHostPort(r.Host); err == nil {
			vars["SERVER_NAME"] = host
			vars["SERVER_PORT"] = port
		} else {
			vars["SERVER_NAME"] = r.Host
		}
	}
	if r.TLS != nil {
		vars["HTTPS"] = "on"
	}
	if r.ContentLength > 0 {
		vars["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}

	for name, values := range r.Header {
		key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		switch key {
		case "CONTENT_TYPE":
			vars[key] = strings.Join(values, ", ")
		case "CONTENT_LENGTH", "PROXY":
			// CONTENT_LENGTH comes from r; HTTP_PROXY is never taken from a client.
		default:
			vars["HTTP_"+key] = strings.Join(values, ", ")
		}
	}
	return vars
}

// ServerFromEnv parses KEY=value pairs as returned by os.Environ.
// Entries without '=' are skipped; later entries win.
func ServerFromEnv(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}
