package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// bcrypt rejects inputs longer than 72 bytes, which max counts in runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	return v
}

// Validate checks struct tags and reports failures per field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return apperrors.NewValidationError("Validation failed", FormatValidationErrors(ve))
	}
	return apperrors.NewValidationError(err.Error(), nil)
}

// FormatValidationErrors turns validator output into field messages.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]any {
	out := make(map[string]any, len(errs))
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", field)
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", field)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", field, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", field, e.Param())
		case "maxbytes":
			message = fmt.Sprintf("The %s field may not be longer than %s bytes.", field, e.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		out[field] = message
	}
	return out
}
