package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	unitIDKey    contextKey = "unit_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUnitID adds a business unit ID to the context.
func WithUnitID(ctx context.Context, unitID string) context.Context {
	return context.WithValue(ctx, unitIDKey, unitID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUnitID retrieves the business unit ID from the context.
// Returns empty string if not present.
func GetUnitID(ctx context.Context) string {
	if id, ok := ctx.Value(unitIDKey).(string); ok {
		return id
	}
	return ""
}
