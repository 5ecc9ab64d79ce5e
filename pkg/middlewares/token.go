package middlewares

import (
	"strings"

	t_token "campus_lost_found/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
	//TokenEmail get email form token, set c.locals name
	TokenEmail = "email"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
	//TokenRaw raw jwt, set c.locals name
	TokenRaw = "token"

	// AuthRedirect front end sign in page
	AuthRedirect = "/auth"
)

// JWTMiddleware validates JWT in the Authorization header, query or cookie
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			return unauthorized(c, "Missing token")
		}

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}

		c.Locals(TokenMemberID, claims.MemberID)
		c.Locals(TokenEmail, claims.Email)
		c.Locals(TokenRole, claims.Role)
		c.Locals(TokenRaw, tokenStr)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if q := c.Query(QueryToken); q != "" {
		return q
	}
	return c.Cookies(CookieToken)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":    msg,
		"redirect": AuthRedirect,
	})
}
