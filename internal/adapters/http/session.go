package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
)

// SessionCookie carries the opaque session token issued at login.
const SessionCookie = "geowatch_session"

const sessionLocal = "session"

// sessionToken pulls the token from the cookie or an Authorization bearer.
func sessionToken(c *fiber.Ctx) string {
	if tok := c.Cookies(SessionCookie); tok != "" {
		return tok
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// SessionMiddleware resolves the request's session. Every page is viewable
// without one, so an absent, expired, or unreadable token degrades to an
// anonymous session rather than a 401. Management routes gate separately.
func SessionMiddleware(store ports.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := domain.Anonymous()
		if tok := sessionToken(c); tok != "" && store != nil {
			if got, err := store.Get(c.Context(), tok); err == nil {
				sess = got
			} else if !errors.Is(err, ports.ErrNoSession) {
				// Store trouble also means browse anonymously.
				sess = domain.Anonymous()
			}
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// SessionFromCtx returns the resolved session, anonymous if none was set.
func SessionFromCtx(c *fiber.Ctx) domain.Session {
	if sess, ok := c.Locals(sessionLocal).(domain.Session); ok {
		return sess
	}
	return domain.Anonymous()
}

// RequireManage rejects mutations from anonymous visitors.
func RequireManage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFromCtx(c).CanManage() {
			return errUnauthorized(c, "sign in to manage queries")
		}
		return c.Next()
	}
}

// SessionHandler reports who the caller is, so the frontend can decide which
// controls to draw.
func SessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if !sess.IsAuthenticated() {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{
			"authenticated": true,
			"user":          sess.User,
			"expires_at":    sess.ExpiresAt,
		})
	}
}

// LogoutHandler ends the caller's session.
func LogoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := sessionToken(c)
		if tok != "" && deps.Sessions != nil {
			_ = deps.Sessions.Delete(c.Context(), tok)
		}
		c.ClearCookie(SessionCookie)
		return c.JSON(fiber.Map{"authenticated": false})
	}
}
