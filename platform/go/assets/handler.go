package assets

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
)

// Handler serves GET requests whose path is the asset key.
func Handler(backend Backend, logger *zap.Logger) http.Handler {
	if backend == nil {
		panic("asset backend is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := platformlogging.FromRequest(r, logger)

		body, info, err := backend.Open(r.Context(), r.URL.Path)
		if err != nil {
			if errors.Is(err, ErrObjectNotFound) {
				http.NotFound(w, r)
				return
			}
			log.Error("asset read failed", zap.String("key", r.URL.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", info.ContentType)
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		if !info.ModTime.IsZero() {
			w.Header().Set("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)

		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, body); err != nil {
			log.Warn("asset write interrupted", zap.String("key", r.URL.Path), zap.Error(err))
		}
	})
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {}, ".svg": {}, ".avif": {},
}

// IsImagePath reports whether p ends in a served image extension.
func IsImagePath(p string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// Intercept sends GET and HEAD requests for image paths to assets and everything else to next.
// Image files share URL prefixes with pages, e.g. /locations/1031-exchange-keller-tx.jpg.
func Intercept(assets http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && IsImagePath(r.URL.Path) {
				assets.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
