package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/session"):
			ttl = "private, no-store" // Never cache identity

		case strings.HasSuffix(path, "/export.csv"):
			ttl = "no-store" // Downloads are one-shot

		case strings.HasPrefix(path, "/v1/dashboard"):
			ttl = "public, max-age=15" // Live view refreshes constantly

		case strings.HasPrefix(path, "/v1/public"):
			ttl = "public, max-age=300" // Public gallery changes rarely

		case strings.HasPrefix(path, "/v1/archive"):
			ttl = "public, max-age=60" // Archive data is stable-ish

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=60"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
