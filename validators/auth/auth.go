package authValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=255"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	UserType *int   `json:"user_type" validate:"required,oneof=0 1"`
	School   string `json:"school" validate:"required,max=255"`
	NIP      string `json:"nip" validate:"omitempty,max=255"`
	NISN     string `json:"nisn" validate:"omitempty,numeric,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		reqData.Username = strings.TrimSpace(reqData.Username)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.School = strings.TrimSpace(reqData.School)
		reqData.NIP = strings.TrimSpace(reqData.NIP)
		reqData.NISN = strings.TrimSpace(reqData.NISN)

		errors := validators.Struct(reqData)

		// The role-specific identifier must match the role
		if reqData.UserType != nil {
			switch *reqData.UserType {
			case models.UserTypeTeacher:
				if reqData.NIP == "" {
					errors["nip"] = "NIP is required for teachers!"
				}
			case models.UserTypeStudent:
				if reqData.NISN == "" {
					errors["nisn"] = "NISN is required for students!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		reqData.Username = strings.TrimSpace(reqData.Username)

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		if reqData.OldPassword == reqData.NewPassword {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"new_password": "New password must differ from the old one!",
			})
		}

		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}
