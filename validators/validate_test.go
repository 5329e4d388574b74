package validators

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleQuestion struct {
	Options []string `json:"option_text" validate:"required,min=2,unique"`
}

type sampleRequest struct {
	Name      string           `json:"name" validate:"required"`
	Email     string           `json:"email" validate:"omitempty,email"`
	Level     string           `form:"level" validate:"omitempty,oneof=easy hard"`
	Code      string           `json:"-" validate:"omitempty,numeric"`
	Questions []sampleQuestion `json:"questions" validate:"dive"`
}

func TestStruct(t *testing.T) {
	errs := Struct(&sampleRequest{
		Email:     "not-an-email",
		Level:     "medium",
		Code:      "12a",
		Questions: []sampleQuestion{{Options: []string{"a", "a"}}, {Options: []string{"a"}}},
	})

	assert.Equal(t, map[string]string{
		"name":                     "This field is required!",
		"email":                    "Invalid email!",
		"level":                    "Must be one of: easy hard!",
		"Code":                     "Must contain digits only!",
		"questions[0].option_text": "Must not contain duplicates!",
		"questions[1].option_text": "Must contain at least 2 items!",
	}, errs)

	assert.Empty(t, Struct(&sampleRequest{Name: "ok", Questions: []sampleQuestion{{Options: []string{"a", "b"}}}}))
}

func TestID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", ID("id"), func(c *fiber.Ctx) error {
		return c.SendString(strings.Repeat("x", int(IDFrom(c, "id"))))
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/items/3", fiber.StatusOK, "xxx"},
		{"/items/0", fiber.StatusBadRequest, ""},
		{"/items/-1", fiber.StatusBadRequest, ""},
		{"/items/abc", fiber.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tt.code, resp.StatusCode, tt.path)
		if tt.body != "" {
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(raw))
		}
	}
}

func TestIDKeepsCallerLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/users/:userId", func(c *fiber.Ctx) error {
		c.Locals("userId", uint(7))
		return c.Next()
	}, ID("userId"), func(c *fiber.Ctx) error {
		caller := c.Locals("userId").(uint)
		return c.SendString(strconv.FormatUint(uint64(caller), 10) + "/" + strconv.FormatUint(uint64(IDFrom(c, "userId")), 10))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/users/9", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "7/9", string(raw))
}

func TestOptionalForm(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		title := OptionalForm(c, "title")
		desc := OptionalForm(c, "description")
		if desc != nil {
			return c.Status(fiber.StatusConflict).SendString("description present")
		}
		if title == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.SendString(*title)
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("title=+Sel+Volta+"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sel Volta", string(raw))

	req = httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("other=1"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
