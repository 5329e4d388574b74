package reviewValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/models"
)

// StatusChange validates the ?status= decision of a reviewer and stores the
// matching approval event.
func StatusChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
		event, err := models.DecisionEvent(status)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be APPROVED or REJECTED!",
			})
		}

		c.Locals("reviewEvent", event)
		return c.Next()
	}
}
