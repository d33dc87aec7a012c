package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// RequireBearer returns a middleware that checks the Authorization header
// against a static bearer token. Used for the analytics endpoints, which
// touch stored OAuth credentials.
func RequireBearer(token string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Analytics access is not configured")
		}

		header := c.Get("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid bearer token")
		}

		return c.Next()
	}
}

// RequireUserID validates the X-User-ID header and stores the normalized
// value in locals for handlers to read.
func RequireUserID() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, errMsg := ValidateUserID(c.Get("X-User-ID"))
		if errMsg != "" {
			return ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER", errMsg)
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// UserID reads the validated user ID placed in locals by RequireUserID.
func UserID(c fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return uid
	}
	return ""
}
