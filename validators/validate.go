package validators

import (
	"fmt"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"virtualab/middleware"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON or form name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct validates req and returns a field → message map, empty when req is valid.
func Struct(req interface{}) map[string]string {
	errors := make(map[string]string)
	err := validate.Struct(req)
	if err == nil {
		return errors
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request!"
		return errors
	}
	for _, fe := range fieldErrs {
		errors[fieldPath(fe)] = message(fe)
	}
	return errors
}

// fieldPath drops the top-level struct name: "Req.questions[0].option_text" → "questions[0].option_text".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "numeric":
		return "Must contain digits only!"
	case "alphanum":
		return "Must contain letters and digits only!"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s!", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("Must contain at least %s items!", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long!", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s!", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("Must contain at most %s items!", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must not exceed %s characters!", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s!", fe.Param())
	case "unique":
		return "Must not contain duplicates!"
	default:
		return "Invalid value!"
	}
}

// ParseBody parses the JSON body into req and validates it. On failure the
// error response has already been written and ok is false.
func ParseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := Struct(req); len(errors) > 0 {
		return false, middleware.ValidationErrorResponse(c, errors)
	}
	return true, nil
}

// ParseID reads a positive integer path parameter.
func ParseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// paramKey namespaces path ids in c.Locals so they never shadow the
// authenticated "userId".
func paramKey(name string) string {
	return "param:" + name
}

// ID is a middleware that validates the path parameter name and stores it in
// c.Locals for IDFrom.
func ID(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := ParseID(c, name)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+name+"!", nil)
		}
		c.Locals(paramKey(name), id)
		return c.Next()
	}
}

// IDFrom returns a path id stored by ID.
func IDFrom(c *fiber.Ctx, name string) uint {
	id, _ := c.Locals(paramKey(name)).(uint)
	return id
}

// OptionalFile returns the uploaded file under field, or nil when none was sent.
func OptionalFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}

// OptionalForm returns a pointer to a trimmed form value, nil when the field is absent.
func OptionalForm(c *fiber.Ctx, field string) *string {
	if c.Request().PostArgs().Has(field) || hasMultipartValue(c, field) {
		v := strings.TrimSpace(c.FormValue(field))
		return &v
	}
	return nil
}

func hasMultipartValue(c *fiber.Ctx, field string) bool {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return false
	}
	_, ok := form.Value[field]
	return ok
}
