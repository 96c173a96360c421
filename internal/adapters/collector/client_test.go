package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestActiveQueries_DecodesWireNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queries/active/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":200,"queries":[{
			"_id":"abc123","name":"London, ON",
			"location":{"coordinates":[-81.25,42.98],"radius":50},
			"startDate":"2023-06-07","endDate":"2023-06-08",
			"keywords":["storm","tornado"],"frequency":30,"maxTweets":100}]}`))
	})

	queries, err := c.ActiveQueries(context.Background())
	if err != nil {
		t.Fatalf("ActiveQueries: %v", err)
	}
	if len(queries) != 1 {
		t.Fatalf("got %d queries, want 1", len(queries))
	}
	q := queries[0]
	if q.ID != "abc123" || q.Name != "London, ON" {
		t.Errorf("identity fields wrong: %+v", q)
	}
	if q.Location.Longitude != -81.25 || q.Location.Latitude != 42.98 || q.RadiusKm != 50 {
		t.Errorf("location wrong: %+v radius %v", q.Location, q.RadiusKm)
	}
	if q.StartDate.Format("2006-01-02") != "2023-06-07" {
		t.Errorf("start date wrong: %v", q.StartDate)
	}
	if q.FrequencyMin != 30 || q.MaxTweets != 100 || len(q.Keywords) != 2 {
		t.Errorf("settings wrong: %+v", q)
	}
}

func TestActiveTweets_ShortKeys(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}
		w.Write([]byte(`{"status":200,"tweets":[{
			"id":"t1","qId":"q1","likes":3,"rt":2,"rp":1,
			"media":[{"type":"photo","url":"https://pic"}],
			"date":"2023-06-07T12:00:00Z",
			"loc":{"coordinates":[-81.0,43.0]},
			"content":"funnel cloud over the 401","kc":2,"is":8.5,"rs":42.17}]}`))
	})

	tweets, err := c.ActiveTweets(context.Background(), 100)
	if err != nil {
		t.Fatalf("ActiveTweets: %v", err)
	}
	tw := tweets[0]
	if tw.Likes != 3 || tw.Retweets != 2 || tw.Replies != 1 {
		t.Errorf("engagement counts wrong: %+v", tw)
	}
	if tw.KeywordCount != 2 || tw.InteractionScore != 8.5 || tw.RelatabilityScore != 42.17 {
		t.Errorf("scores wrong: %+v", tw)
	}
	if len(tw.Media) != 1 || tw.Media[0].Type != domain.MediaPhoto {
		t.Errorf("media wrong: %+v", tw.Media)
	}
	if tw.Location.Latitude != 43.0 {
		t.Errorf("location wrong: %+v", tw.Location)
	}
}

func TestEnvelopeStatus_NotOKIsNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 but the envelope itself reports failure.
		w.Write([]byte(`{"status":404}`))
	})

	if _, err := c.ActiveGeoJSON(context.Background()); !errors.Is(err, ports.ErrNoData) {
		t.Errorf("envelope status 404 should yield ErrNoData, got %v", err)
	}
}

func TestTransportAndDecodeFailuresAreNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"queries":`)) // truncated
	})
	if _, err := c.ActiveQueries(context.Background()); !errors.Is(err, ports.ErrNoData) {
		t.Errorf("decode failure should yield ErrNoData, got %v", err)
	}

	dead := New("http://127.0.0.1:1", time.Second)
	if _, err := dead.ActiveQueries(context.Background()); !errors.Is(err, ports.ErrNoData) {
		t.Errorf("transport failure should yield ErrNoData, got %v", err)
	}
}

func TestGeoJSON_RoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"geojson":{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[-81.0,43.0]},
			 "properties":{"score":42.5,"id":"t1"}}]}}`))
	})

	fc, err := c.QueryGeoJSON(context.Background(), "q1")
	if err != nil {
		t.Fatalf("QueryGeoJSON: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	props, pt, ok := fc.Features[0].Point()
	if !ok {
		t.Fatal("feature should decode as a point")
	}
	if props.Score != 42.5 || props.ID != "t1" || pt.Longitude != -81.0 {
		t.Errorf("point = %+v at %+v", props, pt)
	}
}

func TestCreateQuery_SendsEncodedQueryString(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		got = r.URL.RequestURI()
		w.Write([]byte(`{"status":200}`))
	})

	err := c.CreateQuery(context.Background(), domain.CreateQueryRequest{
		Name:         "London, ON",
		Location:     domain.GeoPoint{Longitude: -81.25, Latitude: 42.98},
		RadiusKm:     50,
		StartDate:    "2023-06-07",
		EndDate:      "2023-06-08",
		FrequencyMin: 30,
		MaxTweets:    100,
		Keywords:     []string{"funnel cloud", "storm"},
	})
	if err != nil {
		t.Fatalf("CreateQuery: %v", err)
	}
	want := "/query/new?name=London%2C+ON&loc=42.98,-81.25,50km&start=2023-06-07&end=2023-06-08&freq=30&max=100&keywords=funnel+cloud,storm"
	if got != want {
		t.Errorf("request uri\n got %s\nwant %s", got, want)
	}
}

func TestMutations_PropagateEnvelopeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":500}`))
	})

	if err := c.ArchiveQuery(context.Background(), "q1"); !errors.Is(err, ports.ErrNoData) {
		t.Errorf("failed archive should yield ErrNoData, got %v", err)
	}
	if err := c.SetPublic(context.Background(), "q1", true); !errors.Is(err, ports.ErrNoData) {
		t.Errorf("failed toggle should yield ErrNoData, got %v", err)
	}
}

func TestSetPublic_Path(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RequestURI()
		w.Write([]byte(`{"status":200}`))
	})

	if err := c.SetPublic(context.Background(), "abc", false); err != nil {
		t.Fatalf("SetPublic: %v", err)
	}
	if got != "/query/archive/abc/public?isPublic=false" {
		t.Errorf("uri = %s", got)
	}
}
