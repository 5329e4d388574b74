package articleRoutes

import (
	"github.com/gofiber/fiber/v2"

	articleController "virtualab/controllers/article"
	reviewController "virtualab/controllers/review"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	articleValidator "virtualab/validators/article"
	reviewValidator "virtualab/validators/review"
)

func SetupArticleRoutes(router fiber.Router) {
	articleGroup := router.Group("/articles")
	id := validators.ID("id")
	teacher := middleware.RequireRole(models.RoleTeacher)

	articleGroup.Post("/", middleware.JWTMiddleware, teacher, articleValidator.CreateArticle(), articleController.CreateArticle)
	articleGroup.Get("/", middleware.JWTMiddleware, teacher, articleController.MyArticles)
	articleGroup.Get("/approved", middleware.JWTMiddleware, articleController.ApprovedArticles)

	articleGroup.Get("/:id/review", middleware.ReviewerOnly, id, articleController.ReviewArticleDetail)
	articleGroup.Get("/:id/history", middleware.ReviewerOnly, id, reviewController.History(models.KindArticle))
	articleGroup.Put("/:id/status", middleware.ReviewerOnly, id, reviewValidator.StatusChange(), articleController.UpdateArticleStatus)
	articleGroup.Get("/:id/content", middleware.ReviewerKey, middleware.OptionalJWTMiddleware,
		middleware.RequireRole(models.RoleStudent, models.RoleTeacher, models.RoleReviewer), id, articleController.ArticleContent)

	articleGroup.Get("/:id", middleware.JWTMiddleware, id, articleController.ArticleDetail)
	articleGroup.Put("/:id", middleware.JWTMiddleware, teacher, id, articleValidator.UpdateArticle(), articleController.UpdateArticle)
	articleGroup.Delete("/:id", middleware.JWTMiddleware, teacher, id, articleController.DeleteArticle)
}
