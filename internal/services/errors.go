package services

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrEmailTaken         = fmt.Errorf("user with this email already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotVerified        = fmt.Errorf("please verify your email before logging in")
	ErrAlreadyVerified    = fmt.Errorf("email is already verified")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidToken       = fmt.Errorf("invalid or expired verification token")
	ErrNotificationSend   = fmt.Errorf("failed to send verification email")
)

// ValidationErrors carries every failing field from input validation so the
// client sees the full list, not just the first failure.
type ValidationErrors struct {
	Errs validation.Errors
}

func (e ValidationErrors) Error() string {
	return "validation failed"
}

// Messages renders one "field: reason" line per failing field, sorted for
// stable output.
func (e ValidationErrors) Messages() []string {
	fields := make([]string, 0, len(e.Errs))
	for f := range e.Errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, fmt.Sprintf("%s: %s", f, e.Errs[f].Error()))
	}
	return out
}

// asValidationErrors wraps an ozzo validation result; non-field errors pass
// through unchanged.
func asValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validation.Errors); ok {
		return ValidationErrors{Errs: verrs}
	}
	return err
}
