package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Deprecated adds RFC 8594 Deprecation and Sunset headers to a legacy route,
// plus a Link to its replacement, so clients can migrate before removal.
func Deprecated(sunset time.Time, alternative string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Deprecation", "true")
		c.Set("Sunset", sunset.UTC().Format(time.RFC1123))
		if alternative != "" {
			c.Set("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, alternative))
		}
		days := time.Until(sunset).Hours() / 24
		c.Set("Warning", fmt.Sprintf(`299 - "Deprecated API, will sunset in %.0f days"`, days))
		return c.Next()
	}
}
