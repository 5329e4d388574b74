package studentController

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"virtualab/apperror"
	exerciseController "virtualab/controllers/exercise"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/utils"
	"virtualab/validators"
	studentValidator "virtualab/validators/student"
)

// ApprovedExercise is an exercise a student can still attempt.
type ApprovedExercise struct {
	models.Exercise
	AuthorName string `json:"author_name"`
}

// AnswerResult reports one graded answer back to the student.
type AnswerResult struct {
	QuestionID     uint     `json:"question_id"`
	QuestionText   string   `json:"question_text"`
	SelectedOption []string `json:"selected_option"`
	CorrectOption  []string `json:"correct_option"`
	IsCorrect      bool     `json:"is_correct"`
}

// Submission is the response to a graded submission.
type Submission struct {
	Result  models.StudentExerciseResult `json:"result"`
	Answers []AnswerResult               `json:"answers"`
}

func loadApprovedExercise(db *gorm.DB, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := db.First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Exercise not found!")
		}
		return nil, apperror.Internal("Failed to load exercise!", err)
	}
	if exercise.ApprovalStatus != models.StatusApproved {
		return nil, apperror.Forbidden("Exercise is not published!")
	}
	return &exercise, nil
}

// ApprovedExercises lists approved exercises the student has not completed yet.
func ApprovedExercises(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := c.Locals("userId").(uint)

	done := db.Model(&models.StudentExerciseResult{}).Select("exercise_id").Where("student_id = ?", userID)

	exercises := make([]ApprovedExercise, 0)
	if err := db.Table("exercises AS e").
		Select("e.*, u.full_name AS author_name").
		Joins("JOIN users u ON u.id = e.author_id").
		Where("e.approval_status = ?", models.StatusApproved).
		Where("e.id NOT IN (?)", done).
		Order("e.updated_at DESC").
		Scan(&exercises).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load exercises!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercises fetched successfully.", exercises)
}

// PracticeExercise returns the questions of an approved exercise without answer keys.
func PracticeExercise(c *fiber.Ctx) error {
	db := database.Database.Db

	exercise, err := loadApprovedExercise(db, validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var questions []models.Question
	if err := db.Where("exercise_id = ?", exercise.ID).Order("id ASC").Find(&questions).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load questions!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise fetched successfully.", fiber.Map{
		"exercise":  exercise,
		"questions": exerciseController.ToQuestionViews(questions),
	})
}

// Grade scores submitted answers against the stored questions. Every answer
// must reference a question of the exercise; unanswered questions count as wrong.
func Grade(questions []models.Question, answers []studentValidator.AnswerInput) ([]AnswerResult, float64, error) {
	if len(questions) == 0 {
		return nil, 0, apperror.InvalidState("Exercise has no questions to grade!")
	}

	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	results := make([]AnswerResult, 0, len(answers))
	correct := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, 0, apperror.Validation(fmt.Sprintf("Question %d does not belong to this exercise!", a.QuestionID))
		}
		isCorrect := utils.SameOptionSet(a.SelectedOption, q.AnswerKeys)
		if isCorrect {
			correct++
		}
		selected := a.SelectedOption
		if selected == nil {
			selected = []string{}
		}
		results = append(results, AnswerResult{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			SelectedOption: selected,
			CorrectOption:  q.AnswerKeys,
			IsCorrect:      isCorrect,
		})
	}

	score, err := utils.Score(correct, len(questions))
	if err != nil {
		return nil, 0, err
	}
	return results, score, nil
}

// SubmitAnswers grades a submission and stores the result with one answer
// row per submitted answer. The unique (student, exercise) index turns a
// second submission into a conflict.
func SubmitAnswers(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAnswers").(*studentValidator.SubmitAnswersRequest)
	userID := c.Locals("userId").(uint)
	id := validators.IDFrom(c, "id")

	var submission Submission
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		exercise, err := loadApprovedExercise(tx, id)
		if err != nil {
			return err
		}

		var questions []models.Question
		if err := tx.Where("exercise_id = ?", exercise.ID).Find(&questions).Error; err != nil {
			return apperror.Internal("Failed to load questions!", err)
		}

		answers, score, err := Grade(questions, reqData.Answers)
		if err != nil {
			return err
		}

		result := models.StudentExerciseResult{
			StudentID:      userID,
			ExerciseID:     exercise.ID,
			Score:          score,
			CompletionDate: time.Now(),
		}
		if err := tx.Create(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("You have already submitted this exercise!")
			}
			return apperror.Internal("Failed to save result!", err)
		}

		rows := make([]models.StudentAnswer, 0, len(answers))
		for _, a := range answers {
			rows = append(rows, models.StudentAnswer{
				ResultID:       result.ID,
				QuestionID:     a.QuestionID,
				SelectedOption: datatypes.JSONSlice[string](a.SelectedOption),
				IsCorrect:      a.IsCorrect,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperror.Internal("Failed to save answers!", err)
		}

		submission = Submission{Result: result, Answers: answers}
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answers submitted successfully.", submission)
}

// canSeeResults lets students read their own results; teachers and reviewers read any.
func canSeeResults(c *fiber.Ctx, studentID uint) bool {
	roles := middleware.RolesOf(c)
	if roles.HasAny(models.RoleTeacher, models.RoleReviewer) {
		return true
	}
	userID, _ := c.Locals("userId").(uint)
	return roles.Has(models.RoleStudent) && userID == studentID
}

// ResultSummary is a result listed with its exercise title.
type ResultSummary struct {
	models.StudentExerciseResult
	ExerciseTitle string `json:"exercise_title"`
	Difficulty    string `json:"difficulty"`
}

// StudentResults lists a student's results, newest first.
func StudentResults(c *fiber.Ctx) error {
	studentID := validators.IDFrom(c, "studentId")
	if !canSeeResults(c, studentID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only see your own results!", nil)
	}

	results := make([]ResultSummary, 0)
	if err := database.Database.Db.Table("student_exercise_results AS r").
		Select("r.*, e.title AS exercise_title, e.difficulty").
		Joins("JOIN exercises e ON e.id = r.exercise_id").
		Where("r.student_id = ?", studentID).
		Order("r.completion_date DESC").
		Scan(&results).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load results!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", results)
}

// ResultDetail returns one result with every answer and its correct options.
func ResultDetail(c *fiber.Ctx) error {
	db := database.Database.Db
	studentID := validators.IDFrom(c, "studentId")
	if !canSeeResults(c, studentID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only see your own results!", nil)
	}

	var result models.StudentExerciseResult
	if err := db.Where("id = ? AND student_id = ?", validators.IDFrom(c, "resultId"), studentID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found!", nil)
		}
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load result!", err))
	}

	var stored []models.StudentAnswer
	if err := db.Where("result_id = ?", result.ID).Order("id ASC").Find(&stored).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load answers!", err))
	}
	var questions []models.Question
	if err := db.Where("exercise_id = ?", result.ExerciseID).Find(&questions).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load questions!", err))
	}
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers := make([]AnswerResult, 0, len(stored))
	for _, a := range stored {
		q := byID[a.QuestionID]
		answers = append(answers, AnswerResult{
			QuestionID:     a.QuestionID,
			QuestionText:   q.QuestionText,
			SelectedOption: a.SelectedOption,
			CorrectOption:  q.AnswerKeys,
			IsCorrect:      a.IsCorrect,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully.", Submission{Result: result, Answers: answers})
}
