package validators

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator so
// handlers can call c.Validate on bound request structs.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator wired into the Echo instance
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates the given struct using its validate tags. The raw
// validator error is returned; handlers translate it to a 400 response.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
