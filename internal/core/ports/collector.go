package ports

import (
	"context"
	"errors"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

// ErrNoData is the single sentinel for every fetch problem: transport
// failure, a non-200 status in the response envelope, or a body we cannot
// decode. Views collapse all three to an empty state; nothing retries.
var ErrNoData = errors.New("no data")

// CollectorGateway is the remote collection service. All durable state lives
// behind it; this tier only reads, creates, and fires mutations.
type CollectorGateway interface {
	// Active collection.
	ActiveQueries(ctx context.Context) ([]domain.Query, error)
	ActiveTweets(ctx context.Context, limit int) ([]domain.Tweet, error)
	ActiveGeoJSON(ctx context.Context) (*domain.FeatureCollection, error)

	// Single-query map data. QueryGeoJSON serves live queries; archived ones
	// answer on ArchiveGeoJSON instead.
	QueryGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error)
	ArchiveGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error)

	// Archive.
	ArchivedQueries(ctx context.Context) ([]domain.ArchivedQuery, error)
	ArchivedQuery(ctx context.Context, id string) (*domain.ArchivedQuery, error)
	// ArchivedTweets with limit 0 returns the full record set.
	ArchivedTweets(ctx context.Context, id string, limit int) ([]domain.Tweet, error)

	// Public aggregate.
	PublicGeoJSON(ctx context.Context) (*domain.FeatureCollection, error)

	// Mutations. All are fire-and-forget POSTs from the caller's view.
	CreateQuery(ctx context.Context, req domain.CreateQueryRequest) error
	RemoveQuery(ctx context.Context, id string) error
	ArchiveQuery(ctx context.Context, id string) error
	RemoveArchivedQuery(ctx context.Context, id string) error
	SetPublic(ctx context.Context, id string, isPublic bool) error
}
