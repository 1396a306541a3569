// Package session carries the authenticated caller through a request.
//
// A Session is created by the auth middleware from a verified token and lives
// on the request's context. It is discarded with the request; logout clears
// the client's token cookie.
package session

import (
	"context"

	"github.com/google/uuid"
)

type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (s *Session) HasRole(role string) bool {
	return s != nil && s.Role == role
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns nil when the request is anonymous.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
