package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"zj-status/internal/tui/state"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// ValidationError reports the first config field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := state.ParseColor(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			name := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			for _, r := range state.Roles() {
				if string(r) == name {
					return true
				}
			}
			return false
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks cfg against its field rules.
func Validate(cfg Config) error {
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg += fmt.Sprintf(" (%s)", ve.Param())
		}
		return &ValidationError{Field: field, Message: msg, Err: err}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

// fieldName turns Config.ShowCounter into show_counter. Map keys inside
// brackets are kept verbatim.
func fieldName(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.StructNamespace(), "Config.")
	var b strings.Builder
	inKey := false
	for i, r := range ns {
		switch {
		case r == '[':
			inKey = true
		case r == ']':
			inKey = false
		case !inKey && r >= 'A' && r <= 'Z':
			if i > 0 && ns[i-1] != '.' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
