package routers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"virtualab/models"
	"virtualab/testutil"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type question struct {
	QuestionText string   `json:"question_text"`
	OptionText   []string `json:"option_text"`
	AnswerKeys   []string `json:"answer_keys"`
}

func createExercise(t *testing.T, env *testutil.Env, token string, questionCount int) models.Exercise {
	t.Helper()
	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/exercises", Token: token,
		JSON: map[string]interface{}{"title": "Reaksi Redoks", "difficulty": "medium", "question_count": questionCount}})
	require.Equal(t, http.StatusCreated, code, res.Message)

	var exercise models.Exercise
	res.Decode(t, &exercise)
	return exercise
}

func addQuestions(t *testing.T, env *testutil.Env, token string, exerciseID uint, questions ...question) (int, testutil.Envelope) {
	t.Helper()
	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/exercises/" + itoa(exerciseID) + "/questions",
		Token: token, JSON: map[string]interface{}{"questions": questions}})
	return code, res
}

func setStatus(t *testing.T, env *testutil.Env, kind string, id uint, status string) int {
	t.Helper()
	code, _, _ := env.Do(t, testutil.Request{Method: http.MethodPut, Path: "/v1/" + kind + "/" + itoa(id) + "/status?status=" + status,
		ReviewerKey: testutil.ReviewerKey})
	return code
}

// approvedExercise creates an exercise holding questions and approves it.
func approvedExercise(t *testing.T, env *testutil.Env, token string, questions ...question) models.Exercise {
	t.Helper()
	exercise := createExercise(t, env, token, len(questions))
	code, res := addQuestions(t, env, token, exercise.ID, questions...)
	require.Equal(t, http.StatusCreated, code, res.Message)
	require.Equal(t, http.StatusOK, setStatus(t, env, "exercises", exercise.ID, "APPROVED"))
	return exercise
}

func storedQuestions(t *testing.T, env *testutil.Env, exerciseID uint) []models.Question {
	t.Helper()
	var questions []models.Question
	require.NoError(t, env.DB.Where("exercise_id = ?", exerciseID).Order("id ASC").Find(&questions).Error)
	return questions
}
