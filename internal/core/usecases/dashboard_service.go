package usecases

import (
	"context"
	"log/slog"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// DefaultTweetLimit caps the dashboard tweet list when the caller does not
// ask for a specific size.
const DefaultTweetLimit = 100

// DashboardService serves the live view: active queries, their tweets, and
// the aggregate map data. Reads never fail the page; a fetch problem is
// logged and the view renders empty.
type DashboardService struct {
	gateway   ports.CollectorGateway
	publisher ports.RefreshPublisher
	logger    *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(gateway ports.CollectorGateway, publisher ports.RefreshPublisher, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{gateway: gateway, publisher: publisher, logger: logger}
}

// Queries returns the active query list, or nil when the backend has nothing.
func (s *DashboardService) Queries(ctx context.Context) []domain.Query {
	queries, err := s.gateway.ActiveQueries(ctx)
	if err != nil {
		s.logger.Warn("active queries unavailable", "error", err)
		return nil
	}
	return queries
}

// Tweets returns up to limit recent tweets across all active queries.
func (s *DashboardService) Tweets(ctx context.Context, limit int) []domain.Tweet {
	if limit <= 0 {
		limit = DefaultTweetLimit
	}
	tweets, err := s.gateway.ActiveTweets(ctx, limit)
	if err != nil {
		s.logger.Warn("active tweets unavailable", "error", err)
		return nil
	}
	return tweets
}

// MapData returns the aggregate point collection of all active queries, or
// nil when there is nothing to draw. The map renders base tiles either way.
func (s *DashboardService) MapData(ctx context.Context) *domain.FeatureCollection {
	fc, err := s.gateway.ActiveGeoJSON(ctx)
	if err != nil {
		s.logger.Warn("active geojson unavailable", "error", err)
		return nil
	}
	return fc
}

// QueryMapData returns a single live query's point collection.
func (s *DashboardService) QueryMapData(ctx context.Context, id string) *domain.FeatureCollection {
	fc, err := s.gateway.QueryGeoJSON(ctx, id)
	if err != nil {
		s.logger.Warn("query geojson unavailable", "query_id", id, "error", err)
		return nil
	}
	return fc
}

// refresh publishes a view refresh event. Only called after a mutation the
// backend acknowledged; a failed mutation must leave every view untouched.
func (s *DashboardService) refresh(ctx context.Context, view string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRefresh(ctx, view); err != nil {
		s.logger.Warn("refresh publish failed", "view", view, "error", err)
		return
	}
	metrics.RefreshEvents.WithLabelValues(view).Inc()
}

// Create submits a new collection query and, on success, refreshes the
// dashboard view.
func (s *DashboardService) Create(ctx context.Context, req domain.CreateQueryRequest) error {
	if err := s.gateway.CreateQuery(ctx, req); err != nil {
		s.logger.Warn("query creation failed", "name", req.Name, "error", err)
		return err
	}
	s.logger.Info("query created", "name", req.Name)
	s.refresh(ctx, ports.ViewDashboard)
	return nil
}

// Remove deletes an active query without keeping its data.
func (s *DashboardService) Remove(ctx context.Context, id string) error {
	if err := s.gateway.RemoveQuery(ctx, id); err != nil {
		s.logger.Warn("query removal failed", "query_id", id, "error", err)
		return err
	}
	s.logger.Info("query removed", "query_id", id)
	s.refresh(ctx, ports.ViewDashboard)
	return nil
}

// Archive ends a query's collection run, moving it from the dashboard to the
// archive. Both views refresh.
func (s *DashboardService) Archive(ctx context.Context, id string) error {
	if err := s.gateway.ArchiveQuery(ctx, id); err != nil {
		s.logger.Warn("query archival failed", "query_id", id, "error", err)
		return err
	}
	s.logger.Info("query archived", "query_id", id)
	s.refresh(ctx, ports.ViewDashboard)
	s.refresh(ctx, ports.ViewArchive)
	return nil
}
