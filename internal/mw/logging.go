package mw

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stowgate/stowgate/internal/httpx"
	"github.com/stowgate/stowgate/internal/trace"
)

type LogOpts struct {
	SkipPaths []string
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions
}

func Logger(opts LogOpts) func(http.Handler) http.Handler {
	skip := map[string]bool{}
	for _, p := range opts.SkipPaths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) || skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := httpx.NewRecorder(w)
			next.ServeHTTP(rec, r)
			dur := time.Since(start)

			// one-liner summary
			slog.Info("req",
				"trace", trace.From(r.Context()),
				"m", r.Method,
				"path", r.URL.Path,
				"status", rec.Status,
				"ms", dur.Milliseconds(),
				"bytes", rec.Bytes,
			)

			// on error, add a compact block with redacted headers
			if rec.Status >= 400 {
				h := map[string]string{}
				for k, vv := range r.Header {
					if len(vv) == 0 {
						continue
					}
					vl := vv[0]
					if strings.EqualFold(k, "Authorization") {
						vl = "***redacted***"
					}
					h[k] = vl
				}
				slog.Error("req_detail",
					"trace", trace.From(r.Context()),
					"m", r.Method, "path", r.URL.Path,
					"status", rec.Status, "ms", dur.Milliseconds(),
					"headers", h,
				)
			}
		})
	}
}
