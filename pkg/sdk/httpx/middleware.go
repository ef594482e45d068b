package httpx

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/nicktill/tinyga/pkg/sdk/hit"
)

// Recorder receives the hits produced by the middleware.
// *batch.Batcher satisfies it.
type Recorder interface {
	Add(p hit.Params, extra ...hit.Field)
}

// Options tunes what the middleware records.
type Options struct {
	// Title returns the document title for a request. Defaults to empty.
	Title func(r *http.Request) string
	// Timing also records a timing hit with the handler duration.
	Timing bool
}

var (
	numericID = regexp.MustCompile(`/\d+`)
	uuidID    = regexp.MustCompile(`/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// Middleware returns HTTP middleware that records a pageview for every
// request, and an exception for every 5xx response.
//
// Usage:
//
//	client, _ := sdk.New(sdk.ClientConfig{TrackingID: "UA-XXXX-Y"})
//	b := batch.New(client, batch.Config{})
//	b.Start(ctx)
//	defer b.Stop()
//
//	handler := httpx.Middleware(b, httpx.Options{})(mux)
//	http.ListenAndServe(":8080", handler)
func Middleware(rec Recorder, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap ResponseWriter to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			path := normalizePath(r.URL.Path)

			title := ""
			if opts.Title != nil {
				title = opts.Title(r)
			}

			rec.Add(hit.Pageview{Hostname: r.Host, Path: path, Title: title})

			if opts.Timing {
				rec.Add(hit.Timing{
					Category: "http",
					Variable: r.Method + " " + path,
					Time:     duration,
				})
			}

			if rw.statusCode >= http.StatusInternalServerError {
				rec.Add(hit.Exception{
					Description: fmt.Sprintf("%s %s returned %d", r.Method, path, rw.statusCode),
				})
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath replaces ids in paths so reports group by route.
// Examples:
//   - /api/users/123 → /api/users/{id}
//   - /api/users/abc-123-def... (uuid) → /api/users/{id}
func normalizePath(path string) string {
	path = uuidID.ReplaceAllString(path, "/{id}")
	return numericID.ReplaceAllString(path, "/{id}")
}
