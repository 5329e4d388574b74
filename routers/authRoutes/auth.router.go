package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "virtualab/controllers/auth"
	authValidator "virtualab/validators/auth"
)

func SetupAuthRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
}
