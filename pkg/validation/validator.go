package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxRounds         = 1000000
	MinRounds         = 1
	MaxCompanyName    = 64
	MaxScenarioName   = 64
	MaxCompanies      = 1000000
	MaxEdgesPerLoader = 10000000

	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct runs struct-tag validation on any tagged value
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateCompanyName checks a company display name from a dataset
func ValidateCompanyName(name string) error {
	if name == "" {
		return errors.New("company name cannot be empty")
	}
	if len(name) > MaxCompanyName {
		return fmt.Errorf("company name '%s' exceeds maximum length of %d characters", name, MaxCompanyName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("company name '%s' is invalid (must start with a letter, followed by alphanumeric, dot, underscore or hyphen)", name)
	}
	return nil
}

// ValidateScenarioName checks a scenario identifier
func ValidateScenarioName(name string) error {
	if name == "" {
		return errors.New("scenario name cannot be empty")
	}
	if len(name) > MaxScenarioName {
		return fmt.Errorf("scenario name '%s' exceeds maximum length of %d characters", name, MaxScenarioName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("scenario name '%s' contains invalid characters", name)
	}
	return nil
}

// ValidateBaseSuspicion checks a scenario base suspicion value
func ValidateBaseSuspicion(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("base suspicion must lie in [0,1], got %g", v)
	}
	return nil
}

// ValidateRounds checks a round budget
func ValidateRounds(n int) error {
	if n < MinRounds {
		return fmt.Errorf("rounds must be at least %d, got %d", MinRounds, n)
	}
	if n > MaxRounds {
		return fmt.Errorf("rounds must not exceed %d, got %d", MaxRounds, n)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be >= %s", field, param)
		case "lte":
			return fmt.Errorf("%s: must be <= %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be > %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "dive":
			return fmt.Errorf("%s: invalid element in list", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
