package usecases_test

import (
	"context"
	"testing"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/core/usecases"
)

func fc(ids ...string) *domain.FeatureCollection {
	out := &domain.FeatureCollection{Type: "FeatureCollection"}
	for range ids {
		out.Features = append(out.Features, domain.Feature{Type: "Feature"})
	}
	return out
}

func TestArchiveService_MapData_PrefersLive(t *testing.T) {
	archiveCalled := false
	gw := &mockGateway{
		queryGeoJSONFn: func(ctx context.Context, id string) (*domain.FeatureCollection, error) {
			return fc("live"), nil
		},
		archiveGeoJSONFn: func(ctx context.Context, id string) (*domain.FeatureCollection, error) {
			archiveCalled = true
			return fc("archive"), nil
		},
	}

	svc := usecases.NewArchiveService(gw, nil, nil)
	if got := svc.MapData(context.Background(), "q1"); got == nil {
		t.Fatal("expected live map data")
	}
	if archiveCalled {
		t.Error("archive endpoint must not be tried when live succeeds")
	}
}

func TestArchiveService_MapData_FallsBackToArchive(t *testing.T) {
	gw := &mockGateway{
		archiveGeoJSONFn: func(ctx context.Context, id string) (*domain.FeatureCollection, error) {
			if id != "q1" {
				t.Errorf("archive fallback asked for %s", id)
			}
			return fc("a", "b"), nil
		},
	}

	svc := usecases.NewArchiveService(gw, nil, nil)
	got := svc.MapData(context.Background(), "q1")
	if got == nil || len(got.Features) != 2 {
		t.Fatalf("fallback map data = %+v", got)
	}
}

func TestArchiveService_MapData_BothFailIsEmpty(t *testing.T) {
	svc := usecases.NewArchiveService(&mockGateway{}, nil, nil)
	if got := svc.MapData(context.Background(), "q1"); got != nil {
		t.Errorf("map data with both endpoints down = %+v, want nil", got)
	}
}

func TestArchiveService_PublicListFilters(t *testing.T) {
	gw := &mockGateway{
		archivedQueriesFn: func(ctx context.Context) ([]domain.ArchivedQuery, error) {
			return []domain.ArchivedQuery{
				{Query: domain.Query{ID: "a"}, IsPublic: true},
				{Query: domain.Query{ID: "b"}, IsPublic: false},
				{Query: domain.Query{ID: "c"}, IsPublic: true},
			}, nil
		},
	}

	svc := usecases.NewArchiveService(gw, nil, nil)
	public := svc.PublicList(context.Background())
	if len(public) != 2 || public[0].ID != "a" || public[1].ID != "c" {
		t.Fatalf("public list = %+v", public)
	}
}

func TestArchiveService_SetPublicRefreshesArchiveAndPublic(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewArchiveService(&mockGateway{}, pub, nil)

	if err := svc.SetPublic(context.Background(), "q1", true); err != nil {
		t.Fatalf("set public: %v", err)
	}
	if len(pub.views) != 2 || pub.views[0] != ports.ViewArchive || pub.views[1] != ports.ViewPublic {
		t.Errorf("published views = %v, want [archive public]", pub.views)
	}
}

func TestArchiveService_FailedToggleNeverPublishes(t *testing.T) {
	pub := &mockPublisher{}
	gw := &mockGateway{
		setPublicFn: func(ctx context.Context, id string, isPublic bool) error {
			return ports.ErrNoData
		},
	}
	svc := usecases.NewArchiveService(gw, pub, nil)

	if err := svc.SetPublic(context.Background(), "q1", true); err == nil {
		t.Error("failed toggle should return the gateway error")
	}
	if len(pub.views) != 0 {
		t.Errorf("failed toggle must not publish, got %v", pub.views)
	}
}
