package usecases_test

import (
	"context"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
)

// --- Mock CollectorGateway ---

type mockGateway struct {
	activeQueriesFn   func(ctx context.Context) ([]domain.Query, error)
	activeTweetsFn    func(ctx context.Context, limit int) ([]domain.Tweet, error)
	activeGeoJSONFn   func(ctx context.Context) (*domain.FeatureCollection, error)
	queryGeoJSONFn    func(ctx context.Context, id string) (*domain.FeatureCollection, error)
	archiveGeoJSONFn  func(ctx context.Context, id string) (*domain.FeatureCollection, error)
	archivedQueriesFn func(ctx context.Context) ([]domain.ArchivedQuery, error)
	archivedQueryFn   func(ctx context.Context, id string) (*domain.ArchivedQuery, error)
	archivedTweetsFn  func(ctx context.Context, id string, limit int) ([]domain.Tweet, error)
	publicGeoJSONFn   func(ctx context.Context) (*domain.FeatureCollection, error)
	createQueryFn     func(ctx context.Context, req domain.CreateQueryRequest) error
	removeQueryFn     func(ctx context.Context, id string) error
	archiveQueryFn    func(ctx context.Context, id string) error
	removeArchivedFn  func(ctx context.Context, id string) error
	setPublicFn       func(ctx context.Context, id string, isPublic bool) error
}

func (m *mockGateway) ActiveQueries(ctx context.Context) ([]domain.Query, error) {
	if m.activeQueriesFn != nil {
		return m.activeQueriesFn(ctx)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ActiveTweets(ctx context.Context, limit int) ([]domain.Tweet, error) {
	if m.activeTweetsFn != nil {
		return m.activeTweetsFn(ctx, limit)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ActiveGeoJSON(ctx context.Context) (*domain.FeatureCollection, error) {
	if m.activeGeoJSONFn != nil {
		return m.activeGeoJSONFn(ctx)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) QueryGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error) {
	if m.queryGeoJSONFn != nil {
		return m.queryGeoJSONFn(ctx, id)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ArchiveGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error) {
	if m.archiveGeoJSONFn != nil {
		return m.archiveGeoJSONFn(ctx, id)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ArchivedQueries(ctx context.Context) ([]domain.ArchivedQuery, error) {
	if m.archivedQueriesFn != nil {
		return m.archivedQueriesFn(ctx)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ArchivedQuery(ctx context.Context, id string) (*domain.ArchivedQuery, error) {
	if m.archivedQueryFn != nil {
		return m.archivedQueryFn(ctx, id)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) ArchivedTweets(ctx context.Context, id string, limit int) ([]domain.Tweet, error) {
	if m.archivedTweetsFn != nil {
		return m.archivedTweetsFn(ctx, id, limit)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) PublicGeoJSON(ctx context.Context) (*domain.FeatureCollection, error) {
	if m.publicGeoJSONFn != nil {
		return m.publicGeoJSONFn(ctx)
	}
	return nil, ports.ErrNoData
}

func (m *mockGateway) CreateQuery(ctx context.Context, req domain.CreateQueryRequest) error {
	if m.createQueryFn != nil {
		return m.createQueryFn(ctx, req)
	}
	return nil
}

func (m *mockGateway) RemoveQuery(ctx context.Context, id string) error {
	if m.removeQueryFn != nil {
		return m.removeQueryFn(ctx, id)
	}
	return nil
}

func (m *mockGateway) ArchiveQuery(ctx context.Context, id string) error {
	if m.archiveQueryFn != nil {
		return m.archiveQueryFn(ctx, id)
	}
	return nil
}

func (m *mockGateway) RemoveArchivedQuery(ctx context.Context, id string) error {
	if m.removeArchivedFn != nil {
		return m.removeArchivedFn(ctx, id)
	}
	return nil
}

func (m *mockGateway) SetPublic(ctx context.Context, id string, isPublic bool) error {
	if m.setPublicFn != nil {
		return m.setPublicFn(ctx, id, isPublic)
	}
	return nil
}

// --- Mock RefreshPublisher ---

type mockPublisher struct {
	views []string
	err   error
}

func (m *mockPublisher) PublishRefresh(ctx context.Context, view string) error {
	if m.err != nil {
		return m.err
	}
	m.views = append(m.views, view)
	return nil
}
