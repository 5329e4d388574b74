package exerciseRoutes

import (
	"github.com/gofiber/fiber/v2"

	exerciseController "virtualab/controllers/exercise"
	reviewController "virtualab/controllers/review"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	exerciseValidator "virtualab/validators/exercise"
	reviewValidator "virtualab/validators/review"
)

func SetupExerciseRoutes(router fiber.Router) {
	exerciseGroup := router.Group("/exercises")
	id := validators.ID("id")
	teacher := middleware.RequireRole(models.RoleTeacher)

	exerciseGroup.Post("/", middleware.JWTMiddleware, teacher, exerciseValidator.CreateExercise(), exerciseController.CreateExercise)
	exerciseGroup.Get("/", middleware.JWTMiddleware, teacher, exerciseController.MyExercises)

	exerciseGroup.Get("/:id/review", middleware.ReviewerOnly, id, exerciseController.ReviewExerciseDetail)
	exerciseGroup.Get("/:id/history", middleware.ReviewerOnly, id, reviewController.History(models.KindExercise))
	exerciseGroup.Put("/:id/status", middleware.ReviewerOnly, id, reviewValidator.StatusChange(), exerciseController.UpdateExerciseStatus)

	exerciseGroup.Get("/:id/questions", middleware.JWTMiddleware, teacher, id, exerciseController.ListQuestions)
	exerciseGroup.Post("/:id/questions", middleware.JWTMiddleware, teacher, id, exerciseValidator.AddQuestions(), exerciseController.AddQuestions)
	exerciseGroup.Put("/:id/questions", middleware.JWTMiddleware, teacher, id, exerciseValidator.UpdateQuestions(), exerciseController.UpdateQuestions)

	exerciseGroup.Get("/:id", middleware.JWTMiddleware, teacher, id, exerciseController.ExerciseDetail)
	exerciseGroup.Put("/:id", middleware.JWTMiddleware, teacher, id, exerciseValidator.UpdateExercise(), exerciseController.UpdateExercise)
	exerciseGroup.Delete("/:id", middleware.JWTMiddleware, teacher, id, exerciseController.DeleteExercise)
}
