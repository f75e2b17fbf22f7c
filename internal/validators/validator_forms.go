package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	FieldTitle    = "Title"
	FieldContent  = "Content"
	FieldEmail    = "Email"
	FieldPassword = "Password"
	FieldUsername = "Username"
)

type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator returns a [Validator] for the forms of this package.
func NewFormValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects strings made of whitespace only.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &FormValidator{validate: v}
}

// Validate checks a form. When fields are given only those fields are checked.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case NoteForm, LoginForm, RegisterForm:
		return v.validateForm(value, fields...)
	case *NoteForm:
		return v.validateForm(*value, fields...)
	case *LoginForm:
		return v.validateForm(*value, fields...)
	case *RegisterForm:
		return v.validateForm(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *FormValidator) validateForm(form any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(form, fields...)
	} else {
		err = v.validate.Struct(form)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrUnknownField, err)
	}

	errs := make([]error, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, fieldError(fe))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case FieldTitle:
		return ErrEmptyTitle
	case FieldContent:
		return ErrEmptyContent
	case FieldPassword:
		return ErrEmptyPassword
	case FieldUsername:
		return ErrEmptyUsername
	case FieldEmail:
		if fe.Tag() == "email" {
			return ErrInvalidEmail
		}
		return ErrEmptyEmail
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, strings.ToLower(fe.Field()))
}
