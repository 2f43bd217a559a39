package core

import "context"

type requestIDKey struct{}

// ContextWithRequestID tags ctx with the id of the inbound request that caused the work
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or ""
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
