package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/bookboard/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Payload is implemented by request types that know how to read themselves
// from the request (body, path params, query string).
//
// Bind returns an *errs.HTTPError (INVALID_JSON, INVALID_PARAMS, NOT_FOUND)
// when the request does not have the expected shape.
type Payload interface {
	Bind(c echo.Context) error
}

// Validatable is implemented by payload types that also check their own values
// after binding.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) payload.Bind(c) populates the request struct.
// 2) payload.Validate(), if implemented, applies validation rules.
// 3) Violations are turned into a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Payload) error {
	if err := payload.Bind(c); err != nil {
		return ToHTTPError(err)
	}

	if v, ok := payload.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return ToHTTPError(err)
		}
	}

	return nil
}

// ToHTTPError maps Violations onto the client-facing error:
// InvalidInput -> INVALID_JSON, every other kind -> VALIDATION_ERROR.
// Any other error is returned unchanged.
func ToHTTPError(err error) error {
	var violations Violations
	if !errors.As(err, &violations) {
		return err
	}
	if violations.Has(InvalidInput) {
		return errs.NewInvalidJSONError(violations.Error())
	}
	return errs.NewValidationError(violations.Error())
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("title"), not the Go name ("Title").
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	return v
}

// Struct validates s against its `validate` tags and converts failures into Violations.
// It returns nil (an untyped nil error) when s is valid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	violations := make(Violations, 0, len(validationErrors))
	for _, fe := range validationErrors {
		violations = append(violations, fromFieldError(fe))
	}
	return violations
}

func fromFieldError(fe validator.FieldError) Violation {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return Missing(field)

	case "max":
		// max tag means:
		// - for strings: maximum length in characters
		// - for numbers: maximum value
		if fe.Kind() == reflect.String {
			return Violation{
				Kind:    TooLong,
				Field:   field,
				Message: fmt.Sprintf("Field '%s' must be at most %s characters.", field, fe.Param()),
			}
		}
		return Invalid(field, fmt.Sprintf("Field '%s' must not exceed %s.", field, fe.Param()))

	case "min":
		return Invalid(field, fmt.Sprintf("Field '%s' must be at least %s.", field, fe.Param()))

	default:
		if fe.Param() != "" {
			return Invalid(field, fmt.Sprintf("Field '%s' failed %s:%s.", field, fe.Tag(), fe.Param()))
		}
		return Invalid(field, fmt.Sprintf("Field '%s' failed %s.", field, fe.Tag()))
	}
}

// DecodeObject decodes raw into dst, requiring raw to be a JSON object.
//
// A non-object (or malformed) document yields an InvalidInput violation;
// a value of the wrong JSON type yields an InvalidValue violation naming the field.
func DecodeObject(raw []byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Violations{Input("Request body must be a JSON object.")}
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return Violations{Invalid(field, fmt.Sprintf("Field '%s' must be of type %s.", field, jsonTypeName(typeErr.Type)))}
		}
		return Violations{Input("Request body must be valid JSON.")}
	}

	return nil
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
