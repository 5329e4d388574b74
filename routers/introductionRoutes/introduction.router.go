package introductionRoutes

import (
	"github.com/gofiber/fiber/v2"

	introductionController "virtualab/controllers/introduction"
	"virtualab/middleware"
	"virtualab/models"
	introductionValidator "virtualab/validators/introduction"
)

func SetupIntroductionRoutes(router fiber.Router) {
	introGroup := router.Group("/introduction")
	anyRole := middleware.RequireRole(models.RoleStudent, models.RoleTeacher, models.RoleReviewer)

	introGroup.Post("/", middleware.ReviewerOnly, introductionValidator.CreateIntroduction(), introductionController.CreateIntroduction)
	introGroup.Get("/", middleware.ReviewerKey, middleware.OptionalJWTMiddleware, anyRole, introductionController.GetIntroduction)
	introGroup.Get("/content", middleware.ReviewerKey, middleware.OptionalJWTMiddleware, anyRole, introductionController.IntroductionContent)
	introGroup.Put("/", middleware.ReviewerOnly, introductionValidator.UpdateIntroduction(), introductionController.UpdateIntroduction)
	introGroup.Delete("/", middleware.ReviewerOnly, introductionController.DeleteIntroduction)
}
