package introductionValidator

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type CreateIntroductionRequest struct {
	Title       string                `form:"title" validate:"required,max=255"`
	Description string                `form:"description" validate:"required,max=5000"`
	File        *multipart.FileHeader `form:"file" validate:"required"`
}

type UpdateIntroductionRequest struct {
	Title       *string               `form:"title" validate:"omitempty,min=1,max=255"`
	Description *string               `form:"description" validate:"omitempty,min=1,max=5000"`
	File        *multipart.FileHeader `form:"file"`
}

// CreateIntroduction validator middleware
func CreateIntroduction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CreateIntroductionRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
			File:        validators.OptionalFile(c, "file"),
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIntroduction", reqData)
		return c.Next()
	}
}

// UpdateIntroduction validator middleware
func UpdateIntroduction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &UpdateIntroductionRequest{
			Title:       validators.OptionalForm(c, "title"),
			Description: validators.OptionalForm(c, "description"),
			File:        validators.OptionalFile(c, "file"),
		}

		if reqData.Title == nil && reqData.Description == nil && reqData.File == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIntroductionUpdate", reqData)
		return c.Next()
	}
}
