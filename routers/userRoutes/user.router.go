package userProfileRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "virtualab/controllers/auth"
	userController "virtualab/controllers/userControllers"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	authValidator "virtualab/validators/auth"
	userValidator "virtualab/validators/userValidator"
)

func SetupUserRoutes(router fiber.Router) {
	userGroup := router.Group("/users")
	userID := validators.ID("userId")

	userGroup.Get("/pending", middleware.ReviewerOnly, userController.PendingUsers)

	userGroup.Get("/me", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/me", middleware.JWTMiddleware, userValidator.UpdateProfile(), userController.UpdateProfile)
	userGroup.Put("/me/password", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
	userGroup.Put("/me/picture", middleware.JWTMiddleware, userValidator.ProfilePicture(), userController.UpdateProfilePicture)

	userGroup.Get("/:userId/picture", middleware.JWTMiddleware, userID, userController.GetProfilePicture)
	userGroup.Put("/:userId/approve", middleware.ReviewerOnly, userID, userValidator.ApproveUser(), userController.ApproveUser)
	userGroup.Delete("/:userId/reject", middleware.ReviewerOnly, userID, userController.RejectUser)
	userGroup.Get("/:userId", middleware.ReviewerKey, middleware.OptionalJWTMiddleware,
		middleware.RequireRole(models.RoleStudent, models.RoleTeacher, models.RoleReviewer), userID, userController.GetUser)
}
