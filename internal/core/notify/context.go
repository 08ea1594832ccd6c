package notify

import (
	"context"
	"errors"
)

// ErrContextNotInitialized is returned when a notification center is
// requested from a context that was never given one.
var ErrContextNotInitialized = errors.New("notification center not initialized in context")

type contextKey struct{}

// WithCenter returns a copy of ctx carrying c.
func WithCenter(ctx context.Context, c *Center) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the center stored in ctx, or ErrContextNotInitialized.
func FromContext(ctx context.Context) (*Center, error) {
	if c, ok := ctx.Value(contextKey{}).(*Center); ok && c != nil {
		return c, nil
	}
	return nil, ErrContextNotInitialized
}

// MustFromContext is like FromContext but panics when no center is set.
// Use it where a missing center is a programming error.
func MustFromContext(ctx context.Context) *Center {
	c, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return c
}
