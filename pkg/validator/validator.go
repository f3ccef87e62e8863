package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator with the application's
// custom rules registered.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// standupdate: a meeting date in YYYY-MM-DD form
	v.RegisterValidation("standupdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
