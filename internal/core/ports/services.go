package ports

import (
	"context"
	"errors"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

// ErrNoSession marks a token with no live session behind it, either unknown
// or expired. Callers treat it as "browse anonymously", not as a failure.
var ErrNoSession = errors.New("no session")

// Views whose data a mutation can change.
const (
	ViewDashboard = "dashboard"
	ViewArchive   = "archive"
	ViewPublic    = "public"
)

// RefreshPublisher announces completed mutations so list views bump their
// refresh key and re-fetch. A failed mutation must never publish.
type RefreshPublisher interface {
	// PublishRefresh signals that the named view's data changed.
	PublishRefresh(ctx context.Context, view string) error
}

// SessionStore persists login sessions keyed by an opaque token.
type SessionStore interface {
	Get(ctx context.Context, token string) (domain.Session, error)
	Put(ctx context.Context, token string, s domain.Session, ttlSeconds int) error
	Delete(ctx context.Context, token string) error
}
