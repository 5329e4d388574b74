package routers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exerciseController "virtualab/controllers/exercise"
	studentController "virtualab/controllers/student"
	"virtualab/models"
	"virtualab/testutil"
)

var (
	q1 = question{QuestionText: "Bilangan oksidasi O dalam H2O?", OptionText: []string{"-2", "-1", "0", "+1"}, AnswerKeys: []string{"-2"}}
	q2 = question{QuestionText: "Manakah reduktor?", OptionText: []string{"Na", "Cl2", "Zn", "F2"}, AnswerKeys: []string{"Na", "Zn"}}
	q3 = question{QuestionText: "Oksidator terkuat?", OptionText: []string{"F2", "I2"}, AnswerKeys: []string{"F2"}}
	q4 = question{QuestionText: "Reaksi redoks melibatkan?", OptionText: []string{"elektron", "proton"}, AnswerKeys: []string{"elektron"}}
)

func TestQuestionCountLimit(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)

	exercise := createExercise(t, env, token, 2)
	assert.Equal(t, models.StatusDraft, exercise.ApprovalStatus)

	code, res := addQuestions(t, env, token, exercise.ID, q1, q2)
	require.Equal(t, http.StatusCreated, code, res.Message)
	var added struct {
		Exercise  models.Exercise   `json:"exercise"`
		Questions []models.Question `json:"questions"`
	}
	res.Decode(t, &added)
	assert.Equal(t, models.StatusPending, added.Exercise.ApprovalStatus)
	assert.Len(t, added.Questions, 2)

	code, _ = addQuestions(t, env, token, exercise.ID, q3)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, storedQuestions(t, env, exercise.ID), 2, "rejected batch must not write")

	// Shrinking below the stored count is refused
	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: "/v1/exercises/" + itoa(exercise.ID), Token: token,
		JSON: map[string]interface{}{"question_count": 1}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuestionValidation(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := createExercise(t, env, token, 5)

	bad := []question{
		{QuestionText: "one option", OptionText: []string{"a"}, AnswerKeys: []string{"a"}},
		{QuestionText: "key outside options", OptionText: []string{"a", "b"}, AnswerKeys: []string{"c"}},
		{QuestionText: "no keys", OptionText: []string{"a", "b"}, AnswerKeys: []string{}},
		{QuestionText: "duplicate options", OptionText: []string{"a", "a"}, AnswerKeys: []string{"a"}},
		{QuestionText: "", OptionText: []string{"a", "b"}, AnswerKeys: []string{"a"}},
	}
	for _, q := range bad {
		code, _ := addQuestions(t, env, token, exercise.ID, q)
		assert.Equal(t, http.StatusBadRequest, code, q.QuestionText)
	}
	assert.Empty(t, storedQuestions(t, env, exercise.ID))

	// Another teacher cannot add questions
	other := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru2")
	code, _ := addQuestions(t, env, testutil.Token(t, other), exercise.ID, q1)
	assert.Equal(t, http.StatusForbidden, code)

	// Students cannot reach teacher routes
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	code, _ = addQuestions(t, env, testutil.Token(t, student), exercise.ID, q1)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestUpdateQuestions(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := approvedExercise(t, env, token, q1, q2)
	questions := storedQuestions(t, env, exercise.ID)

	other := approvedExercise(t, env, token, q3)
	foreign := storedQuestions(t, env, other.ID)

	path := "/v1/exercises/" + itoa(exercise.ID) + "/questions"
	code, _, _ := env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token,
		JSON: map[string]interface{}{"questions": []map[string]interface{}{{"question_id": foreign[0].ID, "question_text": "moved"}}}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token,
		JSON: map[string]interface{}{"questions": []map[string]interface{}{{"question_id": questions[0].ID, "answer_keys": []string{"+2"}}}}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token,
		JSON: map[string]interface{}{"questions": []map[string]interface{}{{"question_id": questions[0].ID, "answer_keys": []string{"-1"}}}}})
	require.Equal(t, http.StatusOK, code, res.Message)

	questions = storedQuestions(t, env, exercise.ID)
	assert.Equal(t, []string{"-1"}, []string(questions[0].AnswerKeys))

	var stored models.Exercise
	require.NoError(t, env.DB.First(&stored, exercise.ID).Error)
	assert.Equal(t, models.StatusPending, stored.ApprovalStatus)
}

func TestEditReopensReview(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := approvedExercise(t, env, token, q1)

	path := "/v1/exercises/" + itoa(exercise.ID)
	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token, JSON: map[string]interface{}{"title": "Redoks 2"}})
	require.Equal(t, http.StatusOK, code, res.Message)
	var updated models.Exercise
	res.Decode(t, &updated)
	assert.Equal(t, models.StatusPending, updated.ApprovalStatus)
	assert.Equal(t, "Redoks 2", updated.Title)

	require.Equal(t, http.StatusOK, setStatus(t, env, "exercises", exercise.ID, "REJECTED"))
	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token, JSON: map[string]interface{}{"difficulty": "hard"}})
	require.Equal(t, http.StatusOK, code, res.Message)
	res.Decode(t, &updated)
	assert.Equal(t, models.StatusPending, updated.ApprovalStatus)

	// Reworking questions parks the exercise in draft
	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: path, Token: token, JSON: map[string]interface{}{"is_updating_questions": true}})
	require.Equal(t, http.StatusOK, code, res.Message)
	res.Decode(t, &updated)
	assert.Equal(t, models.StatusDraft, updated.ApprovalStatus)

	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: path + "/history", ReviewerKey: testutil.ReviewerKey})
	require.Equal(t, http.StatusOK, code)
	var history []models.ReviewHistory
	res.Decode(t, &history)
	assert.Len(t, history, 6)
}

func TestEditWithoutQuestionsStaysDraft(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := createExercise(t, env, token, 2)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPut, Path: "/v1/exercises/" + itoa(exercise.ID), Token: token,
		JSON: map[string]interface{}{"title": "Redoks dasar"}})
	require.Equal(t, http.StatusOK, code, res.Message)
	var updated models.Exercise
	res.Decode(t, &updated)
	assert.Equal(t, models.StatusDraft, updated.ApprovalStatus)
	assert.Equal(t, "Redoks dasar", updated.Title)

	assert.Equal(t, http.StatusConflict, setStatus(t, env, "exercises", exercise.ID, "APPROVED"))

	code, _ = addQuestions(t, env, token, exercise.ID, q1)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, http.StatusOK, setStatus(t, env, "exercises", exercise.ID, "APPROVED"))
}

func TestReviewExerciseDetail(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := createExercise(t, env, token, 2)
	code, _ := addQuestions(t, env, token, exercise.ID, q1, q2)
	require.Equal(t, http.StatusCreated, code)

	path := "/v1/exercises/" + itoa(exercise.ID) + "/review"
	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodGet, Path: path, ReviewerKey: testutil.ReviewerKey})
	require.Equal(t, http.StatusOK, code, res.Message)
	var review exerciseController.ExerciseReview
	res.Decode(t, &review)
	assert.Equal(t, exercise.ID, review.ID)
	assert.Equal(t, "guru1", review.AuthorUsername)
	assert.Equal(t, "NIP-guru1", review.AuthorNIP)
	require.Len(t, review.Questions, 2)
	assert.Equal(t, []string{"Na", "Zn"}, []string(review.Questions[1].AnswerKeys))

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: path, Token: token})
	assert.Equal(t, http.StatusForbidden, code)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/exercises/999/review", ReviewerKey: testutil.ReviewerKey})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStatusEndpoint(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	token := testutil.Token(t, teacher)
	exercise := createExercise(t, env, token, 1)

	// Draft exercises cannot be decided
	assert.Equal(t, http.StatusConflict, setStatus(t, env, "exercises", exercise.ID, "APPROVED"))

	code, _ := addQuestions(t, env, token, exercise.ID, q1)
	require.Equal(t, http.StatusCreated, code)

	assert.Equal(t, http.StatusBadRequest, setStatus(t, env, "exercises", exercise.ID, "PENDING"))
	assert.Equal(t, http.StatusBadRequest, setStatus(t, env, "exercises", exercise.ID, "DONE"))
	assert.Equal(t, http.StatusNotFound, setStatus(t, env, "exercises", 999, "APPROVED"))

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: "/v1/exercises/" + itoa(exercise.ID) + "/status?status=APPROVED", Token: token})
	assert.Equal(t, http.StatusForbidden, code)

	assert.Equal(t, http.StatusOK, setStatus(t, env, "exercises", exercise.ID, "approved"))
	assert.Equal(t, http.StatusConflict, setStatus(t, env, "exercises", exercise.ID, "REJECTED"))
}

func TestSubmitAnswers(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	token := testutil.Token(t, student)

	exercise := approvedExercise(t, env, testutil.Token(t, teacher), q1, q2)
	questions := storedQuestions(t, env, exercise.ID)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/students/exercises", Token: token})
	require.Equal(t, http.StatusOK, code)
	var open []studentController.ApprovedExercise
	res.Decode(t, &open)
	require.Len(t, open, 1)
	assert.Equal(t, "User guru1", open[0].AuthorName)

	code, res, raw := env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/students/exercises/" + itoa(exercise.ID), Token: token})
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(raw), "answer_keys")

	path := "/v1/students/exercises/" + itoa(exercise.ID) + "/answers"
	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodPost, Path: path, Token: token,
		JSON: map[string]interface{}{"answers": []map[string]interface{}{
			{"question_id": questions[0].ID, "selected_option": []string{"-2"}},
			{"question_id": questions[1].ID, "selected_option": []string{"Zn", "Na"}},
		}}})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var submission studentController.Submission
	res.Decode(t, &submission)
	assert.Equal(t, 100.0, submission.Result.Score)
	require.Len(t, submission.Answers, 2)
	assert.True(t, submission.Answers[0].IsCorrect)
	assert.True(t, submission.Answers[1].IsCorrect)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPost, Path: path, Token: token,
		JSON: map[string]interface{}{"answers": []map[string]interface{}{{"question_id": questions[0].ID, "selected_option": []string{"-1"}}}}})
	assert.Equal(t, http.StatusConflict, code)

	// Completed exercises leave the list
	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/students/exercises", Token: token})
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &open)
	assert.Empty(t, open)

	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/students/" + itoa(student.ID) + "/results", Token: token})
	require.Equal(t, http.StatusOK, code)
	var results []studentController.ResultSummary
	res.Decode(t, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Reaksi Redoks", results[0].ExerciseTitle)

	code, res, _ = env.Do(t, testutil.Request{Method: http.MethodGet,
		Path: "/v1/students/" + itoa(student.ID) + "/results/" + itoa(results[0].ID), ReviewerKey: testutil.ReviewerKey})
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &submission)
	assert.Len(t, submission.Answers, 2)

	other := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa2")
	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/students/" + itoa(student.ID) + "/results", Token: testutil.Token(t, other)})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPartialScore(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")

	exercise := approvedExercise(t, env, testutil.Token(t, teacher), q1, q2, q3, q4)
	questions := storedQuestions(t, env, exercise.ID)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/" + itoa(exercise.ID) + "/answers",
		Token: testutil.Token(t, student),
		JSON: map[string]interface{}{"answers": []map[string]interface{}{
			{"question_id": questions[0].ID, "selected_option": []string{"-2"}},
			{"question_id": questions[1].ID, "selected_option": []string{"Na"}}, // partial overlap is wrong
			{"question_id": questions[2].ID, "selected_option": []string{"F2"}},
			{"question_id": questions[3].ID, "selected_option": []string{"elektron"}},
		}}})
	require.Equal(t, http.StatusCreated, code, res.Message)

	var submission studentController.Submission
	res.Decode(t, &submission)
	assert.Equal(t, 75.0, submission.Result.Score)
	assert.False(t, submission.Answers[1].IsCorrect)

	var answers int64
	env.DB.Model(&models.StudentAnswer{}).Where("result_id = ?", submission.Result.ID).Count(&answers)
	assert.Equal(t, int64(4), answers)
}

func TestSubmitUnpublished(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	token := testutil.Token(t, student)

	exercise := createExercise(t, env, testutil.Token(t, teacher), 1)
	code, _ := addQuestions(t, env, testutil.Token(t, teacher), exercise.ID, q1)
	require.Equal(t, http.StatusCreated, code)
	questions := storedQuestions(t, env, exercise.ID)

	body := map[string]interface{}{"answers": []map[string]interface{}{{"question_id": questions[0].ID, "selected_option": []string{"-2"}}}}
	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/" + itoa(exercise.ID) + "/answers", Token: token, JSON: body})
	assert.Equal(t, http.StatusForbidden, code)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/999/answers", Token: token, JSON: body})
	assert.Equal(t, http.StatusNotFound, code)

	require.Equal(t, http.StatusOK, setStatus(t, env, "exercises", exercise.ID, "APPROVED"))
	body = map[string]interface{}{"answers": []map[string]interface{}{{"question_id": 999, "selected_option": []string{"-2"}}}}
	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/" + itoa(exercise.ID) + "/answers", Token: token, JSON: body})
	assert.Equal(t, http.StatusBadRequest, code)

	var results int64
	env.DB.Model(&models.StudentExerciseResult{}).Count(&results)
	assert.Zero(t, results)
}

func TestSubmitWithoutQuestions(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")

	// Published before any question exists, e.g. through a direct database edit
	exercise := createExercise(t, env, testutil.Token(t, teacher), 1)
	require.NoError(t, env.DB.Model(&models.Exercise{}).Where("id = ?", exercise.ID).
		Update("approval_status", models.StatusApproved).Error)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/" + itoa(exercise.ID) + "/answers",
		Token: testutil.Token(t, student),
		JSON:  map[string]interface{}{"answers": []map[string]interface{}{{"question_id": 1, "selected_option": []string{"-2"}}}}})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Exercise has no questions to grade!", res.Message)

	var results int64
	env.DB.Model(&models.StudentExerciseResult{}).Count(&results)
	assert.Zero(t, results)
}

func TestResetResults(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	teacherToken := testutil.Token(t, teacher)

	exercise := approvedExercise(t, env, teacherToken, q1)
	questions := storedQuestions(t, env, exercise.ID)
	code, _, _ := env.Do(t, testutil.Request{Method: http.MethodPost, Path: "/v1/students/exercises/" + itoa(exercise.ID) + "/answers",
		Token: testutil.Token(t, student),
		JSON:  map[string]interface{}{"answers": []map[string]interface{}{{"question_id": questions[0].ID, "selected_option": []string{"0"}}}}})
	require.Equal(t, http.StatusCreated, code)

	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/v1/exercises/" + itoa(exercise.ID), Token: teacherToken})
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		IsResultsExist bool `json:"is_results_exist"`
	}
	res.Decode(t, &detail)
	assert.True(t, detail.IsResultsExist)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodPut, Path: "/v1/exercises/" + itoa(exercise.ID), Token: teacherToken,
		JSON: map[string]interface{}{"is_resetting_results": true}})
	require.Equal(t, http.StatusOK, code)

	var results, answers int64
	env.DB.Model(&models.StudentExerciseResult{}).Count(&results)
	env.DB.Model(&models.StudentAnswer{}).Count(&answers)
	assert.Zero(t, results)
	assert.Zero(t, answers)

	code, _, _ = env.Do(t, testutil.Request{Method: http.MethodDelete, Path: "/v1/exercises/" + itoa(exercise.ID), Token: teacherToken})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, storedQuestions(t, env, exercise.ID))
}
