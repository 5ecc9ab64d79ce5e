package middlewares

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// SessionChecker definition session ttl check, expired session must sign in again
type SessionChecker interface {
	CheckSessionTimeout(ctx context.Context, token string) (bool, error)
	ReconnectSession(ctx context.Context, token string) error
}

// SessionMiddleware run after JWTMiddleware, reject logged out / expired session and slide the ttl
func SessionMiddleware(checker SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals(TokenRaw).(string)
		if raw == "" {
			return unauthorized(c, "Missing token")
		}

		expired, err := checker.CheckSessionTimeout(c.UserContext(), raw)
		if err != nil || expired {
			return unauthorized(c, "Session expired")
		}

		// 有效 session 延長 ttl
		_ = checker.ReconnectSession(c.UserContext(), raw)
		return c.Next()
	}
}
