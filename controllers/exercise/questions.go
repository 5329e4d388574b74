package exerciseController

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"virtualab/apperror"
	reviewController "virtualab/controllers/review"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/validators"
	exerciseValidator "virtualab/validators/exercise"
)

// QuestionView hides the answer keys and only tells how many options to pick.
type QuestionView struct {
	QuestionID     uint     `json:"question_id"`
	QuestionText   string   `json:"question_text"`
	OptionText     []string `json:"option_text"`
	AnswerKeyCount int      `json:"answer_key_count"`
}

// ToQuestionViews strips the answer keys from questions.
func ToQuestionViews(questions []models.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			OptionText:     q.OptionText,
			AnswerKeyCount: len(q.AnswerKeys),
		})
	}
	return views
}

// AddQuestions appends a batch of questions. The exercise row is locked so
// concurrent batches cannot exceed question_count; a rejected batch writes nothing.
func AddQuestions(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestions").(*exerciseValidator.AddQuestionsRequest)
	userID := c.Locals("userId").(uint)
	id := validators.IDFrom(c, "id")

	var created []models.Question
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
		if stored+int64(len(reqData.Questions)) > int64(exercise.QuestionCount) {
			return apperror.Validation(fmt.Sprintf(
				"Exercise allows %d questions, %d already exist!", exercise.QuestionCount, stored))
		}

		created = make([]models.Question, 0, len(reqData.Questions))
		for _, q := range reqData.Questions {
			created = append(created, models.Question{
				ExerciseID:   id,
				QuestionText: q.QuestionText,
				OptionText:   datatypes.JSONSlice[string](q.OptionText),
				AnswerKeys:   datatypes.JSONSlice[string](q.AnswerKeys),
			})
		}
		if err := tx.Create(&created).Error; err != nil {
			return apperror.Internal("Failed to add questions!", err)
		}

		return reviewController.ApplyEvent(tx, exercise, models.EventSubmit, userID)
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questions added successfully.", fiber.Map{
		"exercise":  exercise,
		"questions": created,
	})
}

// UpdateQuestions rewrites the listed questions of the exercise and sends it
// back to review.
func UpdateQuestions(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestionsUpdate").(*exerciseValidator.UpdateQuestionsRequest)
	userID := c.Locals("userId").(uint)
	id := validators.IDFrom(c, "id")

	var updated []models.Question
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		exercise, err := lockOwnExercise(tx, id, userID)
		if err != nil {
			return err
		}

		ids := make([]uint, 0, len(reqData.Questions))
		for _, q := range reqData.Questions {
			ids = append(ids, q.QuestionID)
		}
		var stored []models.Question
		if err := tx.Where("exercise_id = ? AND id IN ?", id, ids).Find(&stored).Error; err != nil {
			return apperror.Internal("Failed to load questions!", err)
		}
		byID := make(map[uint]*models.Question, len(stored))
		for i := range stored {
			byID[stored[i].ID] = &stored[i]
		}

		for _, q := range reqData.Questions {
			question, ok := byID[q.QuestionID]
			if !ok {
				return apperror.Validation(fmt.Sprintf("Question %d does not belong to this exercise!", q.QuestionID))
			}
			if q.QuestionText != nil {
				question.QuestionText = *q.QuestionText
			}
			if q.OptionText != nil {
				question.OptionText = datatypes.JSONSlice[string](q.OptionText)
			}
			if q.AnswerKeys != nil {
				question.AnswerKeys = datatypes.JSONSlice[string](q.AnswerKeys)
			}
			if !exerciseValidator.KeysAreOptions(question.AnswerKeys, question.OptionText) {
				return apperror.Validation(fmt.Sprintf("Answer keys of question %d must be among its options!", q.QuestionID))
			}
			if err := tx.Save(question).Error; err != nil {
				return apperror.Internal("Failed to update question!", err)
			}
			updated = append(updated, *question)
		}

		return reviewController.ApplyEvent(tx, exercise, models.EventEdit, userID)
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions updated successfully.", updated)
}

// ListQuestions shows the author's questions without answer keys.
func ListQuestions(c *fiber.Ctx) error {
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully.", ToQuestionViews(questions))
}
