package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtualab/apperror"
	"virtualab/config"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/testutil"
)

func rolesApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, middleware.RolesOf(c).String(), nil)
	})
	app.Get("/roles", handlers...)
	return app
}

func call(t *testing.T, app *fiber.App, token, reviewerKey string) (int, testutil.Envelope) {
	env := &testutil.Env{App: app}
	code, res, _ := env.Do(t, testutil.Request{Method: http.MethodGet, Path: "/roles", Token: token, ReviewerKey: reviewerKey})
	return code, res
}

func TestJWTMiddleware(t *testing.T) {
	env := testutil.Setup(t)
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")
	app := rolesApp(middleware.JWTMiddleware)

	code, res := call(t, app, testutil.Token(t, teacher), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "TEACHER", res.Message)

	code, _ = call(t, app, "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	// Tokens signed with another secret are refused
	config.AppConfig.JWTKey = "other-secret"
	forged := testutil.Token(t, teacher)
	config.AppConfig.JWTKey = "test-secret"
	code, res = call(t, app, forged, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token!", res.Message)

	config.AppConfig.AccessExpireMinutes = -5
	expired := testutil.Token(t, teacher)
	config.AppConfig.AccessExpireMinutes = 60
	code, res = call(t, app, expired, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token has expired!", res.Message)

	// Deleted users lose access with a still valid token
	token := testutil.Token(t, teacher)
	require.NoError(t, env.DB.Delete(&models.User{}, teacher.ID).Error)
	code, _ = call(t, app, token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOptionalJWTMiddleware(t *testing.T) {
	env := testutil.Setup(t)
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	app := rolesApp(middleware.ReviewerKey, middleware.OptionalJWTMiddleware)

	code, res := call(t, app, "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, res.Message)

	code, res = call(t, app, testutil.Token(t, student), testutil.ReviewerKey)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "STUDENT,REVIEWER", res.Message)

	code, _ = call(t, app, "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestReviewerOnly(t *testing.T) {
	testutil.Setup(t)
	app := rolesApp(middleware.ReviewerOnly)

	code, res := call(t, app, "", testutil.ReviewerKey)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "REVIEWER", res.Message)

	for _, key := range []string{"", "reviewer", testutil.ReviewerKey + "x"} {
		code, res = call(t, app, "", key)
		assert.Equal(t, http.StatusForbidden, code, key)
		assert.Equal(t, "You do not have permission to access this resource!", res.Message, key)
	}

	// An unset key never matches
	config.AppConfig.ReviewerKey = ""
	code, _ = call(t, app, "", "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRequireRole(t *testing.T) {
	env := testutil.Setup(t)
	student := testutil.CreateUser(t, env.DB, models.UserTypeStudent, "siswa1")
	teacher := testutil.CreateUser(t, env.DB, models.UserTypeTeacher, "guru1")

	app := rolesApp(middleware.ReviewerKey, middleware.OptionalJWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleReviewer))

	code, _ := call(t, app, testutil.Token(t, student), "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, app, testutil.Token(t, teacher), "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, app, "", testutil.ReviewerKey)
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, app, "", "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestErrorResponse(t *testing.T) {
	testutil.Setup(t)

	tests := []struct {
		err     error
		code    int
		message string
	}{
		{apperror.Validation("Bad input!"), http.StatusBadRequest, "Bad input!"},
		{apperror.NotFound("Nothing here!"), http.StatusNotFound, "Nothing here!"},
		{apperror.InvalidState("Not pending!"), http.StatusConflict, "Not pending!"},
		{assert.AnError, http.StatusInternalServerError, apperror.MessageOf(assert.AnError)},
	}
	for _, tt := range tests {
		app := rolesApp(func(c *fiber.Ctx) error { return middleware.ErrorResponse(c, tt.err) })
		code, res := call(t, app, "", "")
		assert.Equal(t, tt.code, code)
		assert.False(t, res.Status)
		assert.Equal(t, tt.message, res.Message)
	}
}
