// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("country_name", validateCountryName)
}

// ValidateStruct runs the declarative rule set and returns the first
// violated rule as a single human-readable message. One error at a time
// keeps client handling simple; validation always runs before any storage
// access.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
			e := validationErrs[0]
			return apperrors.NewValidationError(strings.ToLower(e.Field()), validationMessage(e))
		}
		return apperrors.NewValidationError("request", "invalid request")
	}
	return nil
}

func validateCountryName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return len(name) >= 2 && len(name) <= 100
}

func validationMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gte":
		return field + " must be at least " + e.Param()
	case "lte":
		return field + " must be at most " + e.Param()
	case "country_name":
		return field + " must be a country name between 2 and 100 characters"
	default:
		return field + " is invalid"
	}
}
