package studentRoutes

import (
	"github.com/gofiber/fiber/v2"

	studentController "virtualab/controllers/student"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	studentValidator "virtualab/validators/student"
)

func SetupStudentRoutes(router fiber.Router) {
	studentGroup := router.Group("/students")
	student := middleware.RequireRole(models.RoleStudent)
	anyRole := middleware.RequireRole(models.RoleStudent, models.RoleTeacher, models.RoleReviewer)

	studentGroup.Get("/exercises", middleware.JWTMiddleware, student, studentController.ApprovedExercises)
	studentGroup.Get("/exercises/:id", middleware.JWTMiddleware, student, validators.ID("id"), studentController.PracticeExercise)
	studentGroup.Post("/exercises/:id/answers", middleware.JWTMiddleware, student, validators.ID("id"),
		studentValidator.SubmitAnswers(), studentController.SubmitAnswers)

	studentGroup.Get("/:studentId/results", middleware.ReviewerKey, middleware.OptionalJWTMiddleware, anyRole,
		validators.ID("studentId"), studentController.StudentResults)
	studentGroup.Get("/:studentId/results/:resultId", middleware.ReviewerKey, middleware.OptionalJWTMiddleware, anyRole,
		validators.ID("studentId"), validators.ID("resultId"), studentController.ResultDetail)
}
