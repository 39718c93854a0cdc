package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/user"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return permission.ValidDepartmentName(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return request.Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("decision", func(fl validator.FieldLevel) bool {
		return request.Decision(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return user.Role(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "department":
			out = append(out, FieldError{Field: field, Message: "must be 2-64 characters, start with a letter and use only letters, digits, spaces or &()-/"})
		case "priority":
			out = append(out, FieldError{Field: field, Message: "must be one of high, medium, low"})
		case "decision":
			out = append(out, FieldError{Field: field, Message: "must be one of approved, partially_approved, rejected"})
		case "role":
			out = append(out, FieldError{Field: field, Message: "must be admin or staff"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte", "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param()})
		case "lte", "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
