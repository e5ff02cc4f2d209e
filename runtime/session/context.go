package session

import "context"

type sessionContextKey string

// ContextKey carries the active session through handler invocations
var ContextKey = sessionContextKey("mapscript-session")

// WithContext returns a new context carrying the session
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextKey, s)
}

// FromContext retrieves the session from the context if set
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ContextKey).(*Session)
	return s, ok
}
