package middleware

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/redis"
)

// BlacklistKey is the Redis key holding a revoked session token.
func BlacklistKey(token string) string {
	return "session:blacklist:" + token
}

// Protected gates authenticated routes. A request passes only when it
// carries a valid, non-revoked token whose customer still exists in
// storage. A token referencing a deleted customer is treated exactly like
// a missing session: the caller gets a 401 and must log in again.
func Protected() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			// Logged-out tokens stay blacklisted until their natural expiry.
			if revoked, err := isBlacklisted(token.Raw); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to verify session",
				})
			} else if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Session expired. Please log in again.",
				})
			}

			customerID, err := extractCustomerID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid customer ID in token",
				})
			}

			// The token alone is not an identity proof: re-validate that the
			// customer still exists. A dangling reference clears the session;
			// a storage failure is not the caller's fault.
			var customer models.Customer
			lookupErr := db.DB.Where("id = ?", customerID).First(&customer).Error
			switch customerLookupStatus(lookupErr) {
			case fiber.StatusUnauthorized:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Session expired. Please log in again.",
				})
			case fiber.StatusInternalServerError:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to verify session",
				})
			}

			c.Locals("customerID", customer.ID)
			c.Locals("customerName", customer.FullName())

			return c.Next()
		},
	})
}

// customerLookupStatus maps the session's customer-row lookup result to a
// response status: 0 when the row loaded, 401 when the referenced customer
// no longer exists, 500 for storage failures.
func customerLookupStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func isBlacklisted(token string) (bool, error) {
	_, err := redis.Client.Get(redis.Ctx, BlacklistKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// extractCustomerID handles multiple potential formats of the ID claim
func extractCustomerID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
