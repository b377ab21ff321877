package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/luxweave/luxweave/engine/core"
)

// -----------------------------------------------------------------------------
// Validator interface
// -----------------------------------------------------------------------------

type Validator interface {
	Validate(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// CompositeValidator
// -----------------------------------------------------------------------------

// CompositeValidator allows combining multiple validators
type CompositeValidator struct {
	validators []Validator
}

func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{
		validators: validators,
	}
}

func (v *CompositeValidator) AddValidator(validator Validator) {
	v.validators = append(v.validators, validator)
}

func (v *CompositeValidator) Validate(ctx context.Context) error {
	for _, validator := range v.validators {
		if err := validator.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// StructValidator
// -----------------------------------------------------------------------------

type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{
		validate: validator.New(),
		value:    value,
	}
}

func (v *StructValidator) Validate(_ context.Context) error {
	if err := v.validate.Struct(v.value); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return core.NewError(err, core.CodeValidation, map[string]any{
				"fields": formatFieldErrors(fieldErrs),
			})
		}
		return core.NewError(err, core.CodeValidation, nil)
	}
	return nil
}

func (v *StructValidator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// -----------------------------------------------------------------------------
// CheckValidator
// -----------------------------------------------------------------------------

// CheckValidator wraps a bare invariant check so it can participate in a
// CompositeValidator alongside struct validation.
type CheckValidator struct {
	check func() error
}

func NewCheckValidator(check func() error) *CheckValidator {
	return &CheckValidator{check: check}
}

func (v *CheckValidator) Validate(_ context.Context) error {
	return v.check()
}

func formatFieldErrors(fieldErrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s violates %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
