package materialRoutes

import (
	"github.com/gofiber/fiber/v2"

	materialController "virtualab/controllers/material"
	reviewController "virtualab/controllers/review"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	materialValidator "virtualab/validators/material"
	reviewValidator "virtualab/validators/review"
)

func SetupMaterialRoutes(router fiber.Router) {
	materialGroup := router.Group("/materials")
	id := validators.ID("id")
	teacher := middleware.RequireRole(models.RoleTeacher)

	materialGroup.Post("/", middleware.JWTMiddleware, teacher, materialValidator.CreateMaterial(), materialController.CreateMaterial)
	materialGroup.Get("/", middleware.JWTMiddleware, teacher, materialController.MyMaterials)
	materialGroup.Get("/approved", middleware.JWTMiddleware, materialController.ApprovedMaterials)

	materialGroup.Get("/:id/review", middleware.ReviewerOnly, id, materialController.ReviewMaterialDetail)
	materialGroup.Get("/:id/history", middleware.ReviewerOnly, id, reviewController.History(models.KindMaterial))
	materialGroup.Put("/:id/status", middleware.ReviewerOnly, id, reviewValidator.StatusChange(), materialController.UpdateMaterialStatus)
	materialGroup.Get("/:id/content", middleware.ReviewerKey, middleware.OptionalJWTMiddleware,
		middleware.RequireRole(models.RoleStudent, models.RoleTeacher, models.RoleReviewer), id, materialController.MaterialContent)

	materialGroup.Get("/:id", middleware.JWTMiddleware, id, materialController.MaterialDetail)
	materialGroup.Put("/:id", middleware.JWTMiddleware, teacher, id, materialValidator.UpdateMaterial(), materialController.UpdateMaterial)
	materialGroup.Delete("/:id", middleware.JWTMiddleware, teacher, id, materialController.DeleteMaterial)
}
