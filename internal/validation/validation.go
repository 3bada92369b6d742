// Package validation wraps a single validator instance with the custom
// rules the record tracker needs.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// creditstep: course credits come in half-credit increments.
	_ = v.RegisterValidation("creditstep", func(fl validator.FieldLevel) bool {
		val := fl.Field().Float()
		scaled := val * 2
		return math.Abs(scaled-math.Round(scaled)) < 1e-9
	})
	return v
}

// Struct validates v and converts the first failure into a validation
// error with a readable field/tag message.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		return apierr.Validation("field %s failed on %s", strings.ToLower(fe.Field()), describe(fe))
	}
	return apierr.Validation("invalid input: %v", err)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("min=%s", fe.Param())
	case "max":
		return fmt.Sprintf("max=%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("oneof=%s", fe.Param())
	case "creditstep":
		return "credits must be in increments of 0.5"
	default:
		return fe.Tag()
	}
}
