package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Session resolution (anonymous unless a valid token is presented)
	app.Use(SessionMiddleware(deps.Sessions))

	// Health & readiness, no request timeout
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	const reqTimeout = 15 * time.Second

	// REST API v1
	v1 := app.Group("/v1")

	v1.Get("/session", SessionHandler(deps))
	v1.Delete("/session", LogoutHandler(deps))

	v1.Get("/dashboard", timeout.NewWithContext(DashboardHandler(deps), reqTimeout))
	v1.Get("/dashboard/queries", timeout.NewWithContext(DashboardQueriesHandler(deps), reqTimeout))
	v1.Get("/dashboard/tweets", timeout.NewWithContext(DashboardTweetsHandler(deps), reqTimeout))
	v1.Get("/dashboard/map", timeout.NewWithContext(DashboardMapHandler(deps), reqTimeout))

	v1.Post("/queries", RequireManage(), timeout.NewWithContext(CreateQueryHandler(deps), reqTimeout))
	v1.Get("/queries/:id/map", timeout.NewWithContext(QueryMapHandler(deps), reqTimeout))
	v1.Delete("/queries/:id", RequireManage(), timeout.NewWithContext(RemoveQueryHandler(deps), reqTimeout))
	v1.Post("/queries/:id/archive", RequireManage(), timeout.NewWithContext(ArchiveQueryHandler(deps), reqTimeout))

	v1.Get("/archive", timeout.NewWithContext(ArchiveListHandler(deps), reqTimeout))
	v1.Get("/archive/:id", timeout.NewWithContext(ArchiveDetailHandler(deps), reqTimeout))
	v1.Get("/archive/:id/tweets", timeout.NewWithContext(ArchiveTweetsHandler(deps), reqTimeout))
	v1.Get("/archive/:id/map", timeout.NewWithContext(ArchiveMapHandler(deps), reqTimeout))
	// Export streams the complete record set; give it a longer budget.
	v1.Get("/archive/:id/export.csv", timeout.NewWithContext(ExportCSVHandler(deps), 60*time.Second))
	v1.Delete("/archive/:id", RequireManage(), timeout.NewWithContext(RemoveArchiveHandler(deps), reqTimeout))
	v1.Put("/archive/:id/public", RequireManage(), timeout.NewWithContext(SetPublicHandler(deps), reqTimeout))

	v1.Get("/public", timeout.NewWithContext(PublicListHandler(deps), reqTimeout))
	v1.Get("/public/map", timeout.NewWithContext(PublicMapHandler(deps), reqTimeout))

	// Legacy creation route kept for older dashboard builds.
	app.Post("/query/new",
		Deprecated(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "/v1/queries"),
		RequireManage(),
		timeout.NewWithContext(LegacyCreateQueryHandler(deps), reqTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
