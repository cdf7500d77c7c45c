package requesttrace

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey string

const (
	ctxVisitInfo contextKey = "FW1031_REQUEST_TRACE"
)

// SourceKind represents where a request came from.
type SourceKind string

const (
	SourceWeb    SourceKind = "web"
	SourceAPI    SourceKind = "api"
	SourceSystem SourceKind = "system"
)

// VisitInfo captures request-scoped metadata stamped on captured leads.
type VisitInfo struct {
	Source    SourceKind
	RequestID string
	RemoteIP  string
	UserAgent string
	Referrer  string
}

// IntoContext stores the VisitInfo in the provided context.
func IntoContext(ctx context.Context, visit VisitInfo) context.Context {
	return context.WithValue(ctx, ctxVisitInfo, visit)
}

// FromContext extracts the VisitInfo from context, returning false when not present.
func FromContext(ctx context.Context) (VisitInfo, bool) {
	if ctx == nil {
		return VisitInfo{}, false
	}
	visit, ok := ctx.Value(ctxVisitInfo).(VisitInfo)
	return visit, ok
}

// FromContextOrSystem returns the stored VisitInfo, or a system record when absent (CLI, tests).
func FromContextOrSystem(ctx context.Context) VisitInfo {
	if visit, ok := FromContext(ctx); ok {
		return visit
	}
	return System("")
}

// FromRequest builds a VisitInfo from the request headers.
func FromRequest(r *http.Request, source SourceKind, requestID string) VisitInfo {
	return VisitInfo{
		Source:    source,
		RequestID: requestID,
		RemoteIP:  remoteIP(r.RemoteAddr),
		UserAgent: truncate(strings.TrimSpace(r.UserAgent()), 512),
		Referrer:  truncate(strings.TrimSpace(r.Referer()), 1024),
	}
}

// System builds a VisitInfo for background operations.
func System(requestID string) VisitInfo {
	return VisitInfo{Source: SourceSystem, RequestID: requestID}
}

func remoteIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
