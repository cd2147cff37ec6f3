package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"medtrack/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, _, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

func validateMedication(m *domain.Medication) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Dosage = strings.TrimSpace(m.Dosage)
	if err := validate.Struct(m); err != nil {
		return invalidInput(err)
	}
	if m.Frequency != domain.FrequencyAsNeeded && len(m.Times) == 0 {
		return invalidInputf("times required for %s medication", m.Frequency)
	}
	return nil
}
