package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var loginIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

// NewValidator returns a validator with the roster-specific tags registered:
//   - hhmm:    24h wall-clock time "15:04"
//   - isodate: calendar date "2006-01-02"
//   - loginid: 3-64 chars of letters, digits, '-' or '_'
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("loginid", func(fl validator.FieldLevel) bool {
		return loginIDPattern.MatchString(fl.Field().String())
	})
	return v
}
