package postRoutes

import (
	"github.com/gofiber/fiber/v2"

	reviewController "virtualab/controllers/review"
	"virtualab/middleware"
	"virtualab/models"
)

func SetupPostRoutes(router fiber.Router) {
	postGroup := router.Group("/posts")

	postGroup.Get("/recent", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher), reviewController.RecentPosts)
	postGroup.Get("/pending", middleware.ReviewerOnly, reviewController.PendingPosts)
}
