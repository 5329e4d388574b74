package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"virtualab/config"
	"virtualab/models"
)

// ReviewerHeader carries the shared reviewer secret.
const ReviewerHeader = "X-Reviewer-Key"

// RolesOf returns the roles granted to the request so far.
func RolesOf(c *fiber.Ctx) models.RoleSet {
	roles, _ := c.Locals("roles").(models.RoleSet)
	return roles
}

// ReviewerKey grants the reviewer role when the request carries the configured
// secret. A missing or wrong key grants nothing; RequireRole decides.
func ReviewerKey(c *fiber.Ctx) error {
	grantReviewer(c)
	return c.Next()
}

var requireReviewer = RequireRole(models.RoleReviewer)

// ReviewerOnly is ReviewerKey followed by RequireRole(models.RoleReviewer).
func ReviewerOnly(c *fiber.Ctx) error {
	grantReviewer(c)
	return requireReviewer(c)
}

func grantReviewer(c *fiber.Ctx) {
	key := c.Get(ReviewerHeader)
	expected := config.AppConfig.ReviewerKey
	if key == "" || expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		return
	}
	c.Locals("roles", RolesOf(c).With(models.RoleReviewer))
}

// RequireRole returns a middleware that lets the request through when any of
// roles has been granted by ReviewerKey or JWTMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !RolesOf(c).HasAny(roles...) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}
