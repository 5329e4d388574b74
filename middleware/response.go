package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"virtualab/apperror"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// ErrorResponse writes err with the status code of its kind. Unclassified and
// internal errors are logged and reported without detail.
func ErrorResponse(c *fiber.Ctx, err error) error {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal || kind == apperror.KindTransport {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return JsonResponse(c, kind.StatusCode(), false, apperror.MessageOf(err), nil)
}
