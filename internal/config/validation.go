package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

// validatorInstance wraps go-playground/validator, mirroring the
// acdtunes-spacetraders gobot's config.Validator.
type validatorInstance struct {
	validate *validator.Validate
}

func newValidator() *validatorInstance {
	return &validatorInstance{validate: validator.New()}
}

func (v *validatorInstance) validateStruct(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", blockerr.ErrInvalidArgument, err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Field(), e.Tag(), e.Value(),
		))
	}
	return fmt.Errorf("%w: %s", blockerr.ErrInvalidArgument, strings.Join(messages, "; "))
}

// Validate checks cfg's struct tags, classifying any failure as
// blockerr.ErrInvalidArgument.
func Validate(cfg *Config) error {
	return newValidator().validateStruct(cfg)
}
