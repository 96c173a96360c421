package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

const sessionPrefix = "geowatch:session:"

// SessionStore implements ports.SessionStore using Valkey (Redis-compatible).
// Sessions are JSON blobs under an opaque token; expiry is enforced by the
// store's TTL, not by application sweeps.
type SessionStore struct {
	client valkey.Client
}

// New creates a new Valkey session store.
func New(addr string) (*SessionStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &SessionStore{client: client}, nil
}

// Get retrieves the session for a token. A missing or expired token yields
// ports.ErrNoSession.
func (s *SessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(sessionPrefix+token).Build())
	if err := cmd.Error(); err != nil {
		metrics.SessionHits.WithLabelValues("miss").Inc()
		if valkey.IsValkeyNil(err) {
			return domain.Session{}, ports.ErrNoSession
		}
		return domain.Session{}, err
	}
	b, err := cmd.AsBytes()
	if err != nil {
		metrics.SessionHits.WithLabelValues("miss").Inc()
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		metrics.SessionHits.WithLabelValues("miss").Inc()
		return domain.Session{}, err
	}
	metrics.SessionHits.WithLabelValues("hit").Inc()
	return sess, nil
}

// Put stores a session under the token with a TTL in seconds.
func (s *SessionStore) Put(ctx context.Context, token string, sess domain.Session, ttlSeconds int) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(sessionPrefix+token).Value(string(data)).
			Ex(time.Duration(ttlSeconds)*time.Second).Build(),
	)
	return cmd.Error()
}

// Delete ends a session (logout).
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(sessionPrefix+token).Build())
	return cmd.Error()
}

// Close releases the client.
func (s *SessionStore) Close() {
	s.client.Close()
}
