package userValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=3,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	School   *string `json:"school" validate:"omitempty,min=1,max=255"`
}

type ApproveRequest struct {
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		for _, field := range []*string{reqData.FullName, reqData.Email, reqData.School} {
			if field != nil {
				*field = strings.TrimSpace(*field)
			}
		}
		if reqData.Email != nil {
			*reqData.Email = strings.ToLower(*reqData.Email)
		}

		if reqData.FullName == nil && reqData.Email == nil && reqData.School == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// ApproveUser validator middleware. The password may come from the body or
// the query string; without one a password is generated.
func ApproveUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApproveRequest)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		if reqData.Password == "" {
			reqData.Password = c.Query("password")
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApprove", reqData)
		return c.Next()
	}
}

// ProfilePicture validator middleware
func ProfilePicture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file := validators.OptionalFile(c, "file")
		if file == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"file": "This field is required!"})
		}
		c.Locals("validatedFile", file)
		return c.Next()
	}
}
