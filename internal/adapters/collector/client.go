// Package collector is the HTTP gateway to the remote collection service.
// Every durable record this dashboard shows lives behind it.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// Client implements ports.CollectorGateway over the backend's REST API.
// Responses carry their own numeric status field; anything but 200 there, a
// transport failure, or an undecodable body all collapse to ports.ErrNoData.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a collector client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// nodata wraps any fetch problem into the single no-data sentinel, keeping
// the cause text for the diagnostic log line.
func nodata(op string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %v: %w", op, cause, ports.ErrNoData)
	}
	return fmt.Errorf("%s: %w", op, ports.ErrNoData)
}

func (c *Client) call(ctx context.Context, method, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nodata(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollectorRequests.WithLabelValues(op, "error").Inc()
		return nodata(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollectorRequests.WithLabelValues(op, "error").Inc()
		return nodata(op, fmt.Errorf("http %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.CollectorRequests.WithLabelValues(op, "error").Inc()
		return nodata(op, err)
	}

	metrics.CollectorRequests.WithLabelValues(op, "ok").Inc()
	return nil
}

// checkStatus enforces the envelope's own status field.
func checkStatus(op string, status int) error {
	if status != 200 {
		return nodata(op, fmt.Errorf("envelope status %d", status))
	}
	return nil
}

// --- Wire types ------------------------------------------------------------
//
// The backend keys tweet fields with short names (qId, rt, rp, kc, is, rs)
// and nests coordinates GeoJSON-style as [longitude, latitude].

type wireLocation struct {
	Coordinates []float64 `json:"coordinates"`
	Radius      float64   `json:"radius"`
}

func (w wireLocation) point() domain.GeoPoint {
	if len(w.Coordinates) < 2 {
		return domain.GeoPoint{}
	}
	return domain.GeoPoint{Longitude: w.Coordinates[0], Latitude: w.Coordinates[1]}
}

type wireQuery struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Location  wireLocation `json:"location"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Keywords  []string     `json:"keywords"`
	Frequency int          `json:"frequency"`
	MaxTweets int          `json:"maxTweets"`
	IsPublic  bool         `json:"isPublic"`
}

func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (w wireQuery) query() domain.Query {
	return domain.Query{
		ID:           w.ID,
		Name:         w.Name,
		Location:     w.Location.point(),
		RadiusKm:     w.Location.Radius,
		StartDate:    parseDate(w.StartDate),
		EndDate:      parseDate(w.EndDate),
		Keywords:     w.Keywords,
		FrequencyMin: w.Frequency,
		MaxTweets:    w.MaxTweets,
	}
}

type wireTweet struct {
	ID       string         `json:"id"`
	QueryID  string         `json:"qId"`
	Likes    int            `json:"likes"`
	Retweets int            `json:"rt"`
	Replies  int            `json:"rp"`
	Media    []domain.Media `json:"media"`
	Date     string         `json:"date"`
	Location wireLocation   `json:"loc"`
	Content  string         `json:"content"`
	Keywords int            `json:"kc"`
	IScore   float64        `json:"is"`
	RScore   float64        `json:"rs"`
}

func (w wireTweet) tweet() domain.Tweet {
	return domain.Tweet{
		ID:                w.ID,
		QueryID:           w.QueryID,
		Likes:             w.Likes,
		Retweets:          w.Retweets,
		Replies:           w.Replies,
		Media:             w.Media,
		CreatedAt:         parseDate(w.Date),
		Location:          w.Location.point(),
		Content:           w.Content,
		KeywordCount:      w.Keywords,
		InteractionScore:  w.IScore,
		RelatabilityScore: w.RScore,
	}
}

// --- Reads -----------------------------------------------------------------

func (c *Client) queries(ctx context.Context, op, path string) ([]wireQuery, error) {
	var env struct {
		Status  int         `json:"status"`
		Queries []wireQuery `json:"queries"`
	}
	if err := c.call(ctx, http.MethodGet, op, path, &env); err != nil {
		return nil, err
	}
	if err := checkStatus(op, env.Status); err != nil {
		return nil, err
	}
	return env.Queries, nil
}

// ActiveQueries lists the queries currently collecting.
func (c *Client) ActiveQueries(ctx context.Context) ([]domain.Query, error) {
	wires, err := c.queries(ctx, "active_queries", "/queries/active/list")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Query, len(wires))
	for i, w := range wires {
		out[i] = w.query()
	}
	return out, nil
}

// ArchivedQueries lists every archived query.
func (c *Client) ArchivedQueries(ctx context.Context) ([]domain.ArchivedQuery, error) {
	wires, err := c.queries(ctx, "archived_queries", "/queries/archive/list")
	if err != nil {
		return nil, err
	}
	out := make([]domain.ArchivedQuery, len(wires))
	for i, w := range wires {
		out[i] = domain.ArchivedQuery{Query: w.query(), IsPublic: w.IsPublic}
	}
	return out, nil
}

// ArchivedQuery fetches one archived query's detail record.
func (c *Client) ArchivedQuery(ctx context.Context, id string) (*domain.ArchivedQuery, error) {
	const op = "archived_query"
	var env struct {
		Status int       `json:"status"`
		Query  wireQuery `json:"query"`
	}
	if err := c.call(ctx, http.MethodGet, op, "/query/archive/"+id, &env); err != nil {
		return nil, err
	}
	if err := checkStatus(op, env.Status); err != nil {
		return nil, err
	}
	return &domain.ArchivedQuery{Query: env.Query.query(), IsPublic: env.Query.IsPublic}, nil
}

func (c *Client) tweets(ctx context.Context, op, path string, limit int) ([]domain.Tweet, error) {
	var env struct {
		Status int         `json:"status"`
		Tweets []wireTweet `json:"tweets"`
	}
	if err := c.call(ctx, http.MethodGet, op, path+"?limit="+strconv.Itoa(limit), &env); err != nil {
		return nil, err
	}
	if err := checkStatus(op, env.Status); err != nil {
		return nil, err
	}
	out := make([]domain.Tweet, len(env.Tweets))
	for i, w := range env.Tweets {
		out[i] = w.tweet()
	}
	return out, nil
}

// ActiveTweets returns up to limit tweets across all active queries.
func (c *Client) ActiveTweets(ctx context.Context, limit int) ([]domain.Tweet, error) {
	return c.tweets(ctx, "active_tweets", "/queries/active/list/tweets", limit)
}

// ArchivedTweets returns tweets for an archived query. Limit 0 means the
// full, unlimited record set (the export path).
func (c *Client) ArchivedTweets(ctx context.Context, id string, limit int) ([]domain.Tweet, error) {
	return c.tweets(ctx, "archived_tweets", "/query/archive/"+id+"/tweets", limit)
}

func (c *Client) geojson(ctx context.Context, op, path string) (*domain.FeatureCollection, error) {
	var env struct {
		Status  int                       `json:"status"`
		GeoJSON *domain.FeatureCollection `json:"geojson"`
	}
	if err := c.call(ctx, http.MethodGet, op, path, &env); err != nil {
		return nil, err
	}
	if err := checkStatus(op, env.Status); err != nil {
		return nil, err
	}
	if env.GeoJSON == nil {
		return nil, nodata(op, fmt.Errorf("missing geojson body"))
	}
	return env.GeoJSON, nil
}

// ActiveGeoJSON returns the aggregate point collection of all active queries.
func (c *Client) ActiveGeoJSON(ctx context.Context) (*domain.FeatureCollection, error) {
	return c.geojson(ctx, "active_geojson", "/queries/active/list/geojson")
}

// PublicGeoJSON returns the aggregate point collection of public archives.
func (c *Client) PublicGeoJSON(ctx context.Context) (*domain.FeatureCollection, error) {
	return c.geojson(ctx, "public_geojson", "/queries/archive/public/list/geojson")
}

// QueryGeoJSON returns one live query's point collection.
func (c *Client) QueryGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error) {
	return c.geojson(ctx, "query_geojson", "/query/"+id+"/geojson")
}

// ArchiveGeoJSON returns one archived query's point collection.
func (c *Client) ArchiveGeoJSON(ctx context.Context, id string) (*domain.FeatureCollection, error) {
	return c.geojson(ctx, "archive_geojson", "/query/archive/"+id+"/geojson")
}

// --- Mutations -------------------------------------------------------------

func (c *Client) post(ctx context.Context, op, path string) error {
	var env struct {
		Status int `json:"status"`
	}
	if err := c.call(ctx, http.MethodPost, op, path, &env); err != nil {
		return err
	}
	return checkStatus(op, env.Status)
}

// CreateQuery submits a new collection query.
func (c *Client) CreateQuery(ctx context.Context, req domain.CreateQueryRequest) error {
	return c.post(ctx, "create_query", "/query/new?"+req.QueryString())
}

// RemoveQuery deletes an active query.
func (c *Client) RemoveQuery(ctx context.Context, id string) error {
	return c.post(ctx, "remove_query", "/query/"+id+"/remove")
}

// ArchiveQuery ends an active query's collection run.
func (c *Client) ArchiveQuery(ctx context.Context, id string) error {
	return c.post(ctx, "archive_query", "/query/"+id+"/archive")
}

// RemoveArchivedQuery deletes an archived query and its collected data.
func (c *Client) RemoveArchivedQuery(ctx context.Context, id string) error {
	return c.post(ctx, "remove_archived", "/query/archive/"+id+"/remove")
}

// SetPublic toggles an archived query's public visibility.
func (c *Client) SetPublic(ctx context.Context, id string, isPublic bool) error {
	return c.post(ctx, "set_public", "/query/archive/"+id+"/public?isPublic="+strconv.FormatBool(isPublic))
}
