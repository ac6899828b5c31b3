package middleware

import (
	"strings"

	"github.com/burakserin/taskvault/internal/dto"
	"github.com/burakserin/taskvault/internal/models"
	"github.com/burakserin/taskvault/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	userKey  = "currentUser"
	tokenKey = "currentToken"
)

// Protected authenticates the request against the session store. Every
// request re-verifies the token; there is no caching, so a revocation is
// visible on the very next request. The raw token is kept in the context so
// logout can revoke exactly the session in use.
func Protected(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthenticated(c)
		}

		user, err := users.AuthenticateToken(raw)
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals(userKey, user)
		c.Locals(tokenKey, raw)
		return c.Next()
	}
}

// bearerToken strips the Bearer prefix from an Authorization header.
func bearerToken(header string) (string, bool) {
	rest, found := strings.CutPrefix(header, "Bearer")
	if !found {
		return "", false
	}
	token := strings.TrimSpace(rest)
	return token, token != ""
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "please authenticate",
	})
}

// CurrentUser returns the user attached by Protected.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// CurrentToken returns the raw bearer token of the current request.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}
