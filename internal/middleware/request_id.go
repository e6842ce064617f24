package middleware

import (
	"net/http"

	reqcontext "github.com/43mm/twitch-drops-list/internal/context"
)

// RequestIDMiddleware adds request IDs to incoming requests
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Middleware returns the HTTP middleware function for request IDs
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honor an upstream X-Request-ID when present.
		existingRequestID := r.Header.Get("X-Request-ID")

		ctx := r.Context()
		if existingRequestID != "" {
			ctx = reqcontext.WithRequestID(ctx, existingRequestID)
			ctx = reqcontext.WithRemoteAddr(ctx, r.RemoteAddr)
		} else {
			ctx = reqcontext.NewRequestContext(ctx, r.RemoteAddr)
		}

		requestID := reqcontext.GetRequestID(ctx)

		// Echo the request ID for client tracking.
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
