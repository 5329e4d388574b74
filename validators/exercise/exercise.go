package exerciseValidator

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type CreateExerciseRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Difficulty    string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	QuestionCount int    `json:"question_count" validate:"required,min=1,max=10"`
}

type UpdateExerciseRequest struct {
	Title               *string `json:"title" validate:"omitempty,min=1,max=255"`
	Difficulty          *string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionCount       *int    `json:"question_count" validate:"omitempty,min=1,max=10"`
	IsUpdatingQuestions bool    `json:"is_updating_questions"`
	IsResettingResults  bool    `json:"is_resetting_results"`
}

func (r *UpdateExerciseRequest) Empty() bool {
	return r.Title == nil && r.Difficulty == nil && r.QuestionCount == nil &&
		!r.IsUpdatingQuestions && !r.IsResettingResults
}

type QuestionInput struct {
	QuestionText string   `json:"question_text" validate:"required,max=5000"`
	OptionText   []string `json:"option_text" validate:"required,min=2,max=10,unique,dive,required"`
	AnswerKeys   []string `json:"answer_keys" validate:"required,min=1,unique,dive,required"`
}

type AddQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" validate:"required,min=1,max=10,dive"`
}

type QuestionUpdate struct {
	QuestionID   uint     `json:"question_id" validate:"required"`
	QuestionText *string  `json:"question_text" validate:"omitempty,min=1,max=5000"`
	OptionText   []string `json:"option_text" validate:"omitempty,min=2,max=10,unique,dive,required"`
	AnswerKeys   []string `json:"answer_keys" validate:"omitempty,min=1,unique,dive,required"`
}

type UpdateQuestionsRequest struct {
	Questions []QuestionUpdate `json:"questions" validate:"required,min=1,max=10,dive"`
}

// CreateExercise validator middleware
func CreateExercise() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateExerciseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Difficulty = strings.ToLower(strings.TrimSpace(reqData.Difficulty))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExercise", reqData)
		return c.Next()
	}
}

// UpdateExercise validator middleware
func UpdateExercise() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateExerciseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Title != nil {
			*reqData.Title = strings.TrimSpace(*reqData.Title)
		}
		if reqData.Difficulty != nil {
			*reqData.Difficulty = strings.ToLower(strings.TrimSpace(*reqData.Difficulty))
		}

		if reqData.Empty() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExerciseUpdate", reqData)
		return c.Next()
	}
}

// AddQuestions validator middleware
func AddQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddQuestionsRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}

		errors := make(map[string]string)
		for i, q := range reqData.Questions {
			if !KeysAreOptions(q.AnswerKeys, q.OptionText) {
				errors[fmt.Sprintf("questions[%d].answer_keys", i)] = "Every answer key must be one of the options!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestions", reqData)
		return c.Next()
	}
}

// UpdateQuestions validator middleware
func UpdateQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateQuestionsRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}

		errors := make(map[string]string)
		seen := make(map[uint]bool, len(reqData.Questions))
		for i, q := range reqData.Questions {
			if seen[q.QuestionID] {
				errors[fmt.Sprintf("questions[%d].question_id", i)] = "Question is listed twice!"
			}
			seen[q.QuestionID] = true

			// Options and keys are checked together once both are known; the
			// controller re-checks against stored options when only one is sent.
			if q.OptionText != nil && q.AnswerKeys != nil && !KeysAreOptions(q.AnswerKeys, q.OptionText) {
				errors[fmt.Sprintf("questions[%d].answer_keys", i)] = "Every answer key must be one of the options!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionsUpdate", reqData)
		return c.Next()
	}
}

// KeysAreOptions reports whether every answer key is one of the options.
func KeysAreOptions(keys, options []string) bool {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}
