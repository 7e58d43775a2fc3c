package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const IdentityContextKey = "identity"

// Claims carries the verified caller identity minted by the external auth
// system. This service never issues tokens; it only checks the signature
// and reads the email claim.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(IdentityContextKey, strings.ToLower(strings.TrimSpace(claims.Email)))

		return c.Next()
	}
}

// GetIdentity returns the verified caller identity set by AuthRequired.
func GetIdentity(c *fiber.Ctx) (string, error) {
	identity, ok := c.Locals(IdentityContextKey).(string)
	if !ok || identity == "" {
		return "", Unauthorized("User not authenticated")
	}
	return identity, nil
}
