package materialValidator

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type CreateMaterialRequest struct {
	Title       string                `form:"title" validate:"required,max=255"`
	Description string                `form:"description" validate:"max=5000"`
	MediaType   string                `form:"media_type" validate:"required,oneof=image video"`
	File        *multipart.FileHeader `form:"file" validate:"required"`
}

type UpdateMaterialRequest struct {
	Title       *string               `form:"title" validate:"omitempty,min=1,max=255"`
	Description *string               `form:"description" validate:"omitempty,max=5000"`
	MediaType   *string               `form:"media_type" validate:"omitempty,oneof=image video"`
	File        *multipart.FileHeader `form:"file"`
}

func (r *UpdateMaterialRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.MediaType == nil && r.File == nil
}

// CreateMaterial validator middleware
func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CreateMaterialRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
			MediaType:   strings.ToLower(strings.TrimSpace(c.FormValue("media_type"))),
			File:        validators.OptionalFile(c, "file"),
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}

// UpdateMaterial validator middleware
func UpdateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &UpdateMaterialRequest{
			Title:       validators.OptionalForm(c, "title"),
			Description: validators.OptionalForm(c, "description"),
			MediaType:   validators.OptionalForm(c, "media_type"),
			File:        validators.OptionalFile(c, "file"),
		}
		if reqData.MediaType != nil {
			*reqData.MediaType = strings.ToLower(*reqData.MediaType)
		}

		if reqData.Empty() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterialUpdate", reqData)
		return c.Next()
	}
}
