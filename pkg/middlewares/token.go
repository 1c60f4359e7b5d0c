package middlewares

import (
	"context"

	t_token "realtime_chat_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
)

// CredentialResolver resolve a bearer credential to a member id
type CredentialResolver interface {
	Authenticate(ctx context.Context, credential string) (string, error)
}

// Credential find the bearer credential: query, cookie, then Authorization header
func Credential(c *fiber.Ctx) string {
	if tokenStr := c.Query(QueryToken); tokenStr != "" {
		return tokenStr
	}
	if tokenStr := c.Cookies(CookieToken); tokenStr != "" {
		return tokenStr
	}
	return t_token.StripBearer(c.Get(fiber.HeaderAuthorization))
}

// JWTMiddleware validates the bearer credential and stores the member id in locals
func JWTMiddleware(resolver CredentialResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := Credential(c)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		memberID, err := resolver.Authenticate(c.UserContext(), tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(TokenMemberID, memberID)
		return c.Next()
	}
}

// MemberID read the member id set by JWTMiddleware
func MemberID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenMemberID).(string)
	return id
}
