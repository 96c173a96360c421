package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/mapview"
	"github.com/samirrijal/geowatch/internal/core/querybuilder"
	"github.com/samirrijal/geowatch/internal/core/usecases"
	"github.com/samirrijal/geowatch/internal/pkg/geospatial"
)

// mapData pairs a point collection with the layers that draw it. Layers is
// nil when there is nothing to draw; the frontend then renders bare tiles.
type mapData struct {
	GeoJSON *domain.FeatureCollection `json:"geojson"`
	Layers  []mapview.Layer           `json:"layers"`
}

func newMapData(fc *domain.FeatureCollection) mapData {
	return mapData{GeoJSON: fc, Layers: mapview.Layers(fc)}
}

// DashboardHandler returns the live view in one response: active queries,
// the recent tweet list, and the aggregate map data. The viewport frames
// every query circle, or falls back to the default center.
func DashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		ctx := c.Context()
		queries := deps.Dashboard.Queries(ctx)

		resp := fiber.Map{
			"queries": queries,
			"tweets":  deps.Dashboard.Tweets(ctx, limit),
			"map":     newMapData(deps.Dashboard.MapData(ctx)),
		}
		if bounds, ok := geospatial.QueriesBounds(queries); ok {
			resp["bounds"] = bounds
		} else {
			resp["viewport"] = domain.DefaultViewport()
		}
		return c.JSON(resp)
	}
}

// DashboardQueriesHandler lists active queries.
func DashboardQueriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Dashboard.Queries(c.Context()))
	}
}

// DashboardTweetsHandler lists recent tweets across active queries.
func DashboardTweetsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		return c.JSON(deps.Dashboard.Tweets(c.Context(), limit))
	}
}

// DashboardMapHandler returns the aggregate live map data with layers.
func DashboardMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(newMapData(deps.Dashboard.MapData(c.Context())))
	}
}

// QueryMapHandler returns one live query's map data.
func QueryMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		return c.JSON(newMapData(deps.Dashboard.QueryMapData(c.Context(), id)))
	}
}

// createPayload is the JSON body of a query creation request.
type createPayload struct {
	Name         string          `json:"name"`
	Location     domain.GeoPoint `json:"location"`
	RadiusKm     int             `json:"radius_km"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	FrequencyMin int             `json:"frequency_min"`
	MaxTweets    int             `json:"max_tweets"`
	Keywords     []string        `json:"keywords"`
}

// CreateQueryHandler validates and submits a new collection query. Fields
// the caller omits keep the form defaults.
func CreateQueryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p createPayload
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		f := querybuilder.NewForm(time.Now())
		f.Name = p.Name
		if p.RadiusKm != 0 {
			f.RadiusKm = p.RadiusKm
		}
		if p.StartDate != "" {
			f.StartDate = p.StartDate
		}
		if p.EndDate != "" {
			f.EndDate = p.EndDate
		}
		if p.FrequencyMin != 0 {
			f.FrequencyMin = p.FrequencyMin
		}
		if p.MaxTweets != 0 {
			f.MaxTweets = p.MaxTweets
		}
		if p.Keywords != nil {
			f.Keywords = querybuilder.NewTagInput(p.Keywords)
		}
		if p.Location != (domain.GeoPoint{}) {
			f.Marker.DragEnd(p.Location)
		}

		if err := f.Validate(); err != nil {
			return errBadRequest(c, err.Error())
		}
		if err := deps.Dashboard.Create(c.Context(), f.BuildRequest()); err != nil {
			return errBadGateway(c, "query creation failed")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "created"})
	}
}

// LegacyCreateQueryHandler accepts the pre-JSON creation format still used
// by older dashboard builds: everything in the query string, the location as
// lat,lon,<radius>km and keywords percent-encoded individually then
// comma-joined.
func LegacyCreateQueryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		loc := c.Query("loc")
		parts := strings.Split(loc, ",")
		if name == "" || len(parts) != 3 {
			return errBadRequest(c, "name and loc=lat,lon,<radius>km are required")
		}

		lat, latErr := strconv.ParseFloat(parts[0], 64)
		lon, lonErr := strconv.ParseFloat(parts[1], 64)
		radius, radErr := strconv.Atoi(strings.TrimSuffix(parts[2], "km"))
		if latErr != nil || lonErr != nil || radErr != nil {
			return errBadRequest(c, "malformed loc parameter")
		}

		var keywords []string
		for _, part := range strings.Split(c.Query("keywords"), ",") {
			if part == "" {
				continue
			}
			kw, err := url.QueryUnescape(part)
			if err != nil {
				return errBadRequest(c, "malformed keyword: "+part)
			}
			keywords = append(keywords, kw)
		}

		req := domain.CreateQueryRequest{
			Name:         name,
			Location:     domain.GeoPoint{Longitude: lon, Latitude: lat},
			RadiusKm:     radius,
			StartDate:    c.Query("start"),
			EndDate:      c.Query("end"),
			FrequencyMin: c.QueryInt("freq", 30),
			MaxTweets:    c.QueryInt("max", 100),
			Keywords:     keywords,
		}
		if err := deps.Dashboard.Create(c.Context(), req); err != nil {
			return errBadGateway(c, "query creation failed")
		}
		return c.JSON(fiber.Map{"status": "created"})
	}
}

// RemoveQueryHandler deletes an active query.
func RemoveQueryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		if err := deps.Dashboard.Remove(c.Context(), id); err != nil {
			return errBadGateway(c, "query removal failed")
		}
		return c.JSON(fiber.Map{"status": "removed"})
	}
}

// ArchiveQueryHandler ends a query's collection run.
func ArchiveQueryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		if err := deps.Dashboard.Archive(c.Context(), id); err != nil {
			return errBadGateway(c, "query archival failed")
		}
		return c.JSON(fiber.Map{"status": "archived"})
	}
}

// ArchiveListHandler lists archived queries with offset pagination.
func ArchiveListHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		queries := deps.Archive.List(c.Context())

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		total := len(queries)
		if offset >= total {
			queries = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			queries = queries[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: queries, Pagination: pg})
	}
}

// ArchiveDetailHandler returns one archived query.
func ArchiveDetailHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		q := deps.Archive.Get(c.Context(), id)
		if q == nil {
			return errNotFound(c, "archived query not found")
		}
		return c.JSON(struct {
			*domain.ArchivedQuery
			Bounds domain.Bounds `json:"bounds"`
		}{q, geospatial.FitBounds(q.Location, q.RadiusKm)})
	}
}

// ArchiveTweetsHandler returns an archived query's tweets.
func ArchiveTweetsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		limit := c.QueryInt("limit", 100)
		if limit < 0 {
			limit = 100
		}
		return c.JSON(deps.Archive.Tweets(c.Context(), id, limit))
	}
}

// ArchiveMapHandler returns an archived query's map data, falling back from
// the live endpoint to the archive copy inside the service.
func ArchiveMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		return c.JSON(newMapData(deps.Archive.MapData(c.Context(), id)))
	}
}

// ExportCSVHandler streams the full CSV export of an archived query.
func ExportCSVHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}

		q := deps.Archive.Get(c.Context(), id)
		if q == nil {
			return errNotFound(c, "archived query not found")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition,
			`attachment; filename="`+usecases.Filename(*q)+`"`)

		if _, err := deps.Export.WriteCSV(c.Context(), id, c.Response().BodyWriter()); err != nil {
			LoggerFromCtx(c.UserContext()).Warn("csv export failed", "query_id", id, "error", err)
			c.Response().ResetBody()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set(fiber.HeaderContentDisposition, "")
			return errBadGateway(c, "export failed")
		}
		return nil
	}
}

// RemoveArchiveHandler deletes an archived query and its data.
func RemoveArchiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		if err := deps.Archive.Remove(c.Context(), id); err != nil {
			return errBadGateway(c, "archive removal failed")
		}
		return c.JSON(fiber.Map{"status": "removed"})
	}
}

// SetPublicHandler toggles an archived query's public visibility.
func SetPublicHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "query id is required")
		}
		var body struct {
			IsPublic *bool `json:"is_public"`
		}
		if err := c.BodyParser(&body); err != nil || body.IsPublic == nil {
			return errBadRequest(c, "is_public boolean is required")
		}
		if err := deps.Archive.SetPublic(c.Context(), id, *body.IsPublic); err != nil {
			return errBadGateway(c, "public toggle failed")
		}
		return c.JSON(fiber.Map{"status": "updated", "is_public": *body.IsPublic})
	}
}

// PublicListHandler lists the publicly shared archives. No session needed.
func PublicListHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Archive.PublicList(c.Context()))
	}
}

// PublicMapHandler returns the aggregate map data of public archives.
func PublicMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(newMapData(deps.Archive.PublicMapData(c.Context())))
	}
}
