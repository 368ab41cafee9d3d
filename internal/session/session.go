// Package session keeps server-side login sessions. The browser only holds a
// signed reference to a session id; the role snapshot lives in the store and
// is taken once, at login.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HasAnyRole reports whether the snapshot holds one of roles.
func (s *Session) HasAnyRole(roles ...string) bool {
	return model.HasAnyRole(s.Roles, roles...)
}

func (s *Session) IsAdmin() bool {
	return s.HasAnyRole(model.RoleAdmin)
}

// Store persists sessions until their ttl runs out.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
