package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/requesttrace"
)

// RequestTrace stores request-scoped VisitInfo so services can stamp captured leads.
// Requests under /api/ are tagged as API traffic, everything else as web.
func RequestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())

		source := requesttrace.SourceWeb
		if strings.HasPrefix(r.URL.Path, "/api/") {
			source = requesttrace.SourceAPI
		}

		visit := requesttrace.FromRequest(r, source, requestID)
		ctx := requesttrace.IntoContext(r.Context(), visit)

		if logger, ok := platformlogging.FromContext(ctx); ok {
			ctx = platformlogging.WithLogger(ctx, logger.With(zap.String("source", string(visit.Source))))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
