package studentValidator

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
	"virtualab/validators"
)

type AnswerInput struct {
	QuestionID     uint     `json:"question_id" validate:"required"`
	SelectedOption []string `json:"selected_option" validate:"max=10,dive,required"`
}

type SubmitAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,max=10,dive"`
}

// SubmitAnswers validator middleware
func SubmitAnswers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAnswersRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}

		errors := make(map[string]string)
		seen := make(map[uint]bool, len(reqData.Answers))
		for i, a := range reqData.Answers {
			if seen[a.QuestionID] {
				errors[fmt.Sprintf("answers[%d].question_id", i)] = "Question is answered twice!"
			}
			seen[a.QuestionID] = true
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswers", reqData)
		return c.Next()
	}
}
