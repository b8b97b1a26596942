package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON-friendly shape of validation failures.
type ErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// FieldError describes a single failed field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Validator wraps the go-playground validator instance.
type Validator struct {
	validator *validator.Validate
}

// NewValidator returns a Validator that reports fields by their json tag name.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: v}
}

// Validate checks the input struct and returns nil when it passes.
func (v *Validator) Validate(str interface{}) *ErrorResponse {
	err := v.validator.Struct(str)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ErrorResponse{Errors: []FieldError{{Field: "", Msg: err.Error()}}}
	}

	response := ErrorResponse{Errors: make([]FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		response.Errors = append(response.Errors, FieldError{
			Field: fe.Field(),
			Msg:   errorMessage(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return &response
}

func errorMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, param)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s failed on %s", field, tag)
	}
}
