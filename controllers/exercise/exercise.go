package exerciseController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"virtualab/apperror"
	reviewController "virtualab/controllers/review"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	exerciseValidator "virtualab/validators/exercise"
)

// ExerciseReview is the reviewer's view of an exercise and its author.
type ExerciseReview struct {
	models.Exercise
	AuthorUsername string            `json:"author_username"`
	AuthorNIP      string            `json:"author_nip"`
	Questions      []models.Question `json:"questions" gorm:"-"`
}

func loadExercise(db *gorm.DB, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := db.First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Exercise not found!")
		}
		return nil, apperror.Internal("Failed to load exercise!", err)
	}
	return &exercise, nil
}

// lockOwnExercise loads the exercise FOR UPDATE inside tx and checks the
// caller wrote it.
func lockOwnExercise(tx *gorm.DB, id, userID uint) (*models.Exercise, error) {
	exercise, err := loadExercise(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
	if err != nil {
		return nil, err
	}
	if exercise.AuthorID != userID {
		return nil, apperror.Forbidden("You are not the author of this exercise!")
	}
	return exercise, nil
}

func countQuestions(db *gorm.DB, exerciseID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Question{}).Where("exercise_id = ?", exerciseID).Count(&count).Error
	return count, err
}

// deleteResults removes every result of the exercise together with its answers.
func deleteResults(tx *gorm.DB, exerciseID uint) error {
	resultIDs := tx.Model(&models.StudentExerciseResult{}).Select("id").Where("exercise_id = ?", exerciseID)
	if err := tx.Where("result_id IN (?)", resultIDs).Delete(&models.StudentAnswer{}).Error; err != nil {
		return errors.Wrap(err, "delete answers")
	}
	if err := tx.Where("exercise_id = ?", exerciseID).Delete(&models.StudentExerciseResult{}).Error; err != nil {
		return errors.Wrap(err, "delete results")
	}
	return nil
}

// CreateExercise creates an empty exercise. It stays DRAFT until questions are added.
func CreateExercise(c *fiber.Ctx) error {
	reqData := c.Locals("validatedExercise").(*exerciseValidator.CreateExerciseRequest)
	userID := c.Locals("userId").(uint)

	exercise := models.Exercise{
		Title:          reqData.Title,
		Difficulty:     reqData.Difficulty,
		QuestionCount:  reqData.QuestionCount,
		AuthorID:       userID,
		ApprovalStatus: models.StatusDraft,
	}
	if err := database.Database.Db.Create(&exercise).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to create exercise!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exercise created successfully.", exercise)
}

// MyExercises lists the caller's exercises, newest first.
func MyExercises(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var exercises []models.Exercise
	if err := database.Database.Db.Where("author_id = ?", userID).Order("updated_at DESC").Find(&exercises).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load exercises!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercises fetched successfully.", exercises)
}

// ExerciseDetail returns the author's exercise with its questions and
// whether any student has submitted it.
func ExerciseDetail(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := c.Locals("userId").(uint)

	exercise, err := loadExercise(db, validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if exercise.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the author of this exercise!", nil)
	}

	var questions []models.Question
	if err := db.Where("exercise_id = ?", exercise.ID).Order("id ASC").Find(&questions).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load questions!", err))
	}

	var results int64
	if err := db.Model(&models.StudentExerciseResult{}).Where("exercise_id = ?", exercise.ID).Count(&results).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load results!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise fetched successfully.", fiber.Map{
		"exercise":         exercise,
		"questions":        questions,
		"is_results_exist": results > 0,
	})
}

// ReviewExerciseDetail shows an exercise, its questions with answer keys and
// its author to a reviewer.
func ReviewExerciseDetail(c *fiber.Ctx) error {
	db := database.Database.Db

	var review ExerciseReview
	result := db.Table("exercises AS e").
		Select("e.*, u.username AS author_username, t.nip AS author_nip").
		Joins("JOIN users u ON u.id = e.author_id").
		Joins("LEFT JOIN teachers t ON t.teacher_id = e.author_id").
		Where("e.id = ?", validators.IDFrom(c, "id")).
		Scan(&review)
	if result.Error != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load exercise!", result.Error))
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exercise not found!", nil)
	}

	if err := db.Where("exercise_id = ?", review.ID).Order("id ASC").Find(&review.Questions).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load questions!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise fetched successfully.", review)
}

// UpdateExercise edits exercise fields. Flagging is_updating_questions parks
// the exercise in DRAFT until questions are resubmitted; any other edit sends
// it back to review. An exercise without questions stays in DRAFT.
func UpdateExercise(c *fiber.Ctx) error {
	reqData := c.Locals("validatedExerciseUpdate").(*exerciseValidator.UpdateExerciseRequest)
	userID := c.Locals("userId").(uint)
	id := validators.IDFrom(c, "id")

	var exercise *models.Exercise
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		if exercise, err = lockOwnExercise(tx, id, userID); err != nil {
			return err
		}

		stored, err := countQuestions(tx, id)
		if err != nil {
			return apperror.Internal("Failed to count questions!", err)
		}
		if reqData.QuestionCount != nil {
			if int64(*reqData.QuestionCount) < stored {
				return apperror.Validation("Exercise already has more questions than the new question_count!")
			}
			exercise.QuestionCount = *reqData.QuestionCount
		}
		if reqData.Title != nil {
			exercise.Title = *reqData.Title
		}
		if reqData.Difficulty != nil {
			exercise.Difficulty = *reqData.Difficulty
		}

		if reqData.IsResettingResults {
			if err := deleteResults(tx, id); err != nil {
				return apperror.Internal("Failed to reset results!", err)
			}
		}

		event := models.EventEdit
		if reqData.IsUpdatingQuestions || stored == 0 {
			event = models.EventDraft
		}
		return reviewController.ApplyEvent(tx, exercise, event, userID)
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise updated successfully.", exercise)
}

// DeleteExercise removes the exercise with its questions, results and answers.
func DeleteExercise(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	id := validators.IDFrom(c, "id")

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		exercise, err := lockOwnExercise(tx, id, userID)
		if err != nil {
			return err
		}
		if err := deleteResults(tx, id); err != nil {
			return apperror.Internal("Failed to delete results!", err)
		}
		if err := tx.Where("exercise_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return apperror.Internal("Failed to delete questions!", err)
		}
		if err := tx.Delete(exercise).Error; err != nil {
			return apperror.Internal("Failed to delete exercise!", err)
		}
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise deleted successfully.", nil)
}

// UpdateExerciseStatus approves or rejects a pending exercise.
func UpdateExerciseStatus(c *fiber.Ctx) error {
	return reviewController.Decide(c, &models.Exercise{})
}
