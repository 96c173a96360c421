package usecases

import (
	"context"
	"log/slog"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// ArchiveService serves finished queries: the archive list, per-query detail
// and map data, and the public gallery. Same silent-failure reads as the
// dashboard; mutations report errors and refresh views only on success.
type ArchiveService struct {
	gateway   ports.CollectorGateway
	publisher ports.RefreshPublisher
	logger    *slog.Logger
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(gateway ports.CollectorGateway, publisher ports.RefreshPublisher, logger *slog.Logger) *ArchiveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveService{gateway: gateway, publisher: publisher, logger: logger}
}

// List returns every archived query, or nil when none are reachable.
func (s *ArchiveService) List(ctx context.Context) []domain.ArchivedQuery {
	queries, err := s.gateway.ArchivedQueries(ctx)
	if err != nil {
		s.logger.Warn("archive list unavailable", "error", err)
		return nil
	}
	return queries
}

// Get returns one archived query's detail record, or nil if unavailable.
func (s *ArchiveService) Get(ctx context.Context, id string) *domain.ArchivedQuery {
	q, err := s.gateway.ArchivedQuery(ctx, id)
	if err != nil {
		s.logger.Warn("archived query unavailable", "query_id", id, "error", err)
		return nil
	}
	return q
}

// Tweets returns up to limit tweets of an archived query. Limit 0 fetches
// the complete record set.
func (s *ArchiveService) Tweets(ctx context.Context, id string, limit int) []domain.Tweet {
	tweets, err := s.gateway.ArchivedTweets(ctx, id, limit)
	if err != nil {
		s.logger.Warn("archived tweets unavailable", "query_id", id, "error", err)
		return nil
	}
	return tweets
}

// MapData returns a query's point collection, preferring the live endpoint
// and falling back to the archive copy when the query is no longer active.
// Both failing renders an empty map, never an error page.
func (s *ArchiveService) MapData(ctx context.Context, id string) *domain.FeatureCollection {
	if fc, err := s.gateway.QueryGeoJSON(ctx, id); err == nil {
		return fc
	}
	metrics.ArchiveFallbacks.Inc()
	fc, err := s.gateway.ArchiveGeoJSON(ctx, id)
	if err != nil {
		s.logger.Warn("archive geojson unavailable", "query_id", id, "error", err)
		return nil
	}
	return fc
}

// PublicList returns only the archived queries shared publicly.
func (s *ArchiveService) PublicList(ctx context.Context) []domain.ArchivedQuery {
	queries, err := s.gateway.ArchivedQueries(ctx)
	if err != nil {
		s.logger.Warn("public list unavailable", "error", err)
		return nil
	}
	var public []domain.ArchivedQuery
	for _, q := range queries {
		if q.IsPublic {
			public = append(public, q)
		}
	}
	return public
}

// PublicMapData returns the aggregate point collection of public archives.
func (s *ArchiveService) PublicMapData(ctx context.Context) *domain.FeatureCollection {
	fc, err := s.gateway.PublicGeoJSON(ctx)
	if err != nil {
		s.logger.Warn("public geojson unavailable", "error", err)
		return nil
	}
	return fc
}

func (s *ArchiveService) refresh(ctx context.Context, view string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRefresh(ctx, view); err != nil {
		s.logger.Warn("refresh publish failed", "view", view, "error", err)
		return
	}
	metrics.RefreshEvents.WithLabelValues(view).Inc()
}

// Remove deletes an archived query and its collected data.
func (s *ArchiveService) Remove(ctx context.Context, id string) error {
	if err := s.gateway.RemoveArchivedQuery(ctx, id); err != nil {
		s.logger.Warn("archive removal failed", "query_id", id, "error", err)
		return err
	}
	s.logger.Info("archived query removed", "query_id", id)
	s.refresh(ctx, ports.ViewArchive)
	s.refresh(ctx, ports.ViewPublic)
	return nil
}

// SetPublic toggles a query's public visibility. The public gallery changes
// either way, so both the archive and public views refresh.
func (s *ArchiveService) SetPublic(ctx context.Context, id string, isPublic bool) error {
	if err := s.gateway.SetPublic(ctx, id, isPublic); err != nil {
		s.logger.Warn("public toggle failed", "query_id", id, "error", err)
		return err
	}
	s.logger.Info("public visibility changed", "query_id", id, "is_public", isPublic)
	s.refresh(ctx, ports.ViewArchive)
	s.refresh(ctx, ports.ViewPublic)
	return nil
}
