package articleValidator

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type CreateArticleRequest struct {
	Title       string                `form:"title" validate:"required,max=255"`
	Description string                `form:"description" validate:"max=20000"`
	File        *multipart.FileHeader `form:"file" validate:"required"`
}

type UpdateArticleRequest struct {
	Title       *string               `form:"title" validate:"omitempty,min=1,max=255"`
	Description *string               `form:"description" validate:"omitempty,max=20000"`
	File        *multipart.FileHeader `form:"file"`
}

func (r *UpdateArticleRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.File == nil
}

// CreateArticle validator middleware
func CreateArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CreateArticleRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
			File:        validators.OptionalFile(c, "file"),
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedArticle", reqData)
		return c.Next()
	}
}

// UpdateArticle validator middleware
func UpdateArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &UpdateArticleRequest{
			Title:       validators.OptionalForm(c, "title"),
			Description: validators.OptionalForm(c, "description"),
			File:        validators.OptionalFile(c, "file"),
		}

		if reqData.Empty() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedArticleUpdate", reqData)
		return c.Next()
	}
}
