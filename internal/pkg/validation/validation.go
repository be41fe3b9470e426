// Package validation registers custom binding rules on the validator
// engine gin uses for request binding.
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/unigrade/backend/internal/app/models"
)

// RegisterCustomValidators installs domain validation tags. Call once at
// startup before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("lettergrade", validLetterGrade); err != nil {
		return err
	}
	if err := v.RegisterValidation("coursekind", validCourseKind); err != nil {
		return err
	}
	return nil
}

// validLetterGrade accepts only grades on the A..F scale.
func validLetterGrade(fl validator.FieldLevel) bool {
	return models.Grade(fl.Field().String()).Valid()
}

// validCourseKind accepts the known course kinds, or empty for optional
// fields.
func validCourseKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.CourseKind(value).Valid()
}
