package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// Context keys for client metadata.
type contextKeyClientIP struct{}
type contextKeyClient struct{}

// ClientInfo is the parsed client descriptor attached to each request; the
// access log and audit trail use it to describe where a mint came from.
type ClientInfo struct {
	IP       string
	Browser  string
	Platform string
	Mobile   bool
	Bot      bool
}

// ClientMetadata extracts the client IP and a parsed User-Agent descriptor and
// adds them to the context. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPFromRequest(r)
		ua := useragent.New(r.Header.Get("User-Agent"))
		browser, version := ua.Browser()

		info := ClientInfo{
			IP:       ip,
			Browser:  strings.TrimSpace(browser + " " + version),
			Platform: ua.Platform(),
			Mobile:   ua.Mobile(),
			Bot:      ua.Bot(),
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyClientIP{}, ip)
		ctx = context.WithValue(ctx, contextKeyClient{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

// GetClientInfo retrieves the parsed client descriptor from the context.
func GetClientInfo(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(contextKeyClient{}).(ClientInfo); ok {
		return info
	}
	return ClientInfo{}
}

// clientIPFromRequest extracts the real client IP, handling proxies.
func clientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
