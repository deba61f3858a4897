// Package validator provides custom validation functions for service inputs.
package validator

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"tally/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	validate *validator.Validate
	once     sync.Once
)

// Get returns the shared validator instance with all custom validations
// registered.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("hex_color", validateHexColor)
		_ = validate.RegisterValidation("currency_format", validateCurrencyFormat)
		_ = validate.RegisterValidation("limit_period", validateLimitPeriod)
	})
	return validate
}

// validateHexColor accepts empty values or #RGB/#RRGGBB colors.
func validateHexColor(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hexColorRegex.MatchString(value)
}

func validateCurrencyFormat(fl validator.FieldLevel) bool {
	switch models.CurrencyFormat(fl.Field().String()) {
	case models.FormatPTBR, models.FormatENUS:
		return true
	}
	return false
}

func validateLimitPeriod(fl validator.FieldLevel) bool {
	switch models.LimitPeriod(fl.Field().String()) {
	case models.LimitPeriodDaily, models.LimitPeriodWeekly, models.LimitPeriodMonthly:
		return true
	}
	return false
}
