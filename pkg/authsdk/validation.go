package authsdk

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Field limits shared by the server and clients.
const (
	MaxEmailLength    = 64
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxLocationLength = 64
	MaxAboutMeLength  = 2048
)

var reUsername = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

var usernameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, MaxUsernameLength),
	validation.Match(reUsername).Error("must start with a letter and only contain letters, numbers, dots or underscores"),
}

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(MinPasswordLength, MaxPasswordLength),
}

// ValidationErrors maps JSON field names to a message. It is returned by the
// Validate methods below and sent back as ValidationErrorResponse.Details.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return strings.Join(parts, "; ")
}

// toValidationErrors flattens ozzo errors into field messages, or nil.
func toValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var ozzoErrs validation.Errors
	if !errors.As(err, &ozzoErrs) {
		return ValidationErrors{"_": err.Error()}
	}

	out := make(ValidationErrors, len(ozzoErrs))
	for field, fe := range ozzoErrs {
		if fe != nil {
			out[field] = fe.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Normalize trims whitespace and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks the registration fields.
func (r RegisterRequest) Validate() ValidationErrors {
	return toValidationErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(1, MaxEmailLength), is.Email),
		validation.Field(&r.Username, usernameRules...),
		validation.Field(&r.Password, passwordRules...),
	))
}

// Validate checks the login fields are present. Credential checks are left
// to the server so failures stay uniform.
func (r LoginRequest) Validate() ValidationErrors {
	return toValidationErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(1, MaxEmailLength)),
		validation.Field(&r.Password, validation.Required),
	))
}

// Validate checks the new password meets the policy.
func (r ChangePasswordRequest) Validate() ValidationErrors {
	return toValidationErrors(validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, passwordRules...),
	))
}

// Validate checks only the fields that are present.
func (r UpdateProfileRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if r.Username != nil {
		if err := validation.Validate(strings.TrimSpace(*r.Username), usernameRules...); err != nil {
			errs["username"] = err.Error()
		}
	}
	if r.Location != nil {
		if err := validation.Validate(*r.Location, validation.Length(0, MaxLocationLength)); err != nil {
			errs["location"] = err.Error()
		}
	}
	if r.AboutMe != nil {
		if err := validation.Validate(*r.AboutMe, validation.Length(0, MaxAboutMeLength)); err != nil {
			errs["about_me"] = err.Error()
		}
	}
	if r.Username == nil && r.Location == nil && r.AboutMe == nil {
		errs["_"] = "at least one field is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the email is well formed.
func (r ResetPasswordRequest) Validate() ValidationErrors {
	return toValidationErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(1, MaxEmailLength), is.Email),
	))
}

// Validate checks the new password meets the policy.
func (r NewPasswordRequest) Validate() ValidationErrors {
	return toValidationErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Password, passwordRules...),
	))
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
