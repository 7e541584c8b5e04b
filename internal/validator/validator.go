package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the custom field rules used
// across the service.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()
	return v
}

// Validate runs struct-tag validation and converts failures into field-level
// errors.
func (v *Validator) Validate(s any) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerRules() {
	v.validate.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	v.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return passwordClasses(fl.Field().String())
	})
}

// ===== FIELD RULES =====
//
// Pure per-field checks. Each returns the normalized (trimmed) value or the
// specific rule that failed, so callers can re-display the exact reason.
// These never touch storage; uniqueness is the repositories' concern.

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

func Name(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", ValidationError{Field: "name", Message: "is required", Rule: "required"}
	}
	if len(name) < 2 || len(name) > 100 {
		return "", ValidationError{Field: "name", Message: "must be between 2 and 100 characters", Rule: "length"}
	}
	return name, nil
}

// Email validates the address grammar and lowercases it. Emails are compared
// case-insensitively everywhere, so normalizing here keeps the unique index
// and the login lookup on the same contract.
func Email(value string) (string, error) {
	email := strings.TrimSpace(value)
	if email == "" {
		return "", ValidationError{Field: "email", Message: "is required", Rule: "required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ValidationError{Field: "email", Message: "must be a valid email address", Rule: "email"}
	}
	return strings.ToLower(email), nil
}

func Phone(value string) (string, error) {
	phone := strings.TrimSpace(value)
	if phone == "" {
		return "", ValidationError{Field: "phone", Message: "is required", Rule: "required"}
	}
	if len(phone) < 8 || len(phone) > 20 {
		return "", ValidationError{Field: "phone", Message: "must be between 8 and 20 characters", Rule: "length"}
	}
	if !phonePattern.MatchString(phone) {
		return "", ValidationError{Field: "phone", Message: "contains invalid characters", Rule: "phone_chars"}
	}
	return phone, nil
}

func Password(value string) (string, error) {
	if value == "" {
		return "", ValidationError{Field: "password", Message: "is required", Rule: "required"}
	}
	if len(value) < 8 {
		return "", ValidationError{Field: "password", Message: "must be at least 8 characters", Rule: "min"}
	}
	if !strings.ContainsFunc(value, unicode.IsUpper) {
		return "", ValidationError{Field: "password", Message: "must contain at least one uppercase letter", Rule: "upper"}
	}
	if !strings.ContainsFunc(value, unicode.IsLower) {
		return "", ValidationError{Field: "password", Message: "must contain at least one lowercase letter", Rule: "lower"}
	}
	if !strings.ContainsFunc(value, unicode.IsDigit) {
		return "", ValidationError{Field: "password", Message: "must contain at least one digit", Rule: "digit"}
	}
	if !strings.ContainsAny(value, passwordSymbols) {
		return "", ValidationError{Field: "password", Message: "must contain at least one special character", Rule: "symbol"}
	}
	return value, nil
}

func CourseTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", ValidationError{Field: "title", Message: "is required", Rule: "required"}
	}
	if len(title) < 2 || len(title) > 120 {
		return "", ValidationError{Field: "title", Message: "must be between 2 and 120 characters", Rule: "length"}
	}
	return title, nil
}

func CourseDescription(value string) (string, error) {
	description := strings.TrimSpace(value)
	if description == "" {
		return "", ValidationError{Field: "description", Message: "is required", Rule: "required"}
	}
	return description, nil
}

func passwordClasses(pw string) bool {
	return len(pw) >= 8 &&
		strings.ContainsFunc(pw, unicode.IsUpper) &&
		strings.ContainsFunc(pw, unicode.IsLower) &&
		strings.ContainsFunc(pw, unicode.IsDigit) &&
		strings.ContainsAny(pw, passwordSymbols)
}
