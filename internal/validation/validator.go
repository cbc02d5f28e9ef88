// Package validation provides a shared go-playground/validator instance with
// the field rules used by the recipe and user write contracts.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ReservedUsername cannot be registered because it collides with the /users/me route.
const ReservedUsername = "me"

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule, reported by JSON field name.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Validator returns the process-wide validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidUsername(fl.Field().String())
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidUsername reports whether value may be used as a username.
func ValidUsername(value string) bool {
	return value != ReservedUsername && usernamePattern.MatchString(value)
}

// Struct validates s and returns the first failing field, or nil.
func Struct(s interface{}) *FieldError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Message: err.Error()}
	}
	e := verrs[0]
	return &FieldError{
		Field:   e.Field(),
		Tag:     e.Tag(),
		Param:   e.Param(),
		Message: message(e),
	}
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "min", "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "username":
		return fmt.Sprintf("%q is not allowed as a username: use letters, digits and @/./+/-/_ only, and not %q.", e.Value(), ReservedUsername)
	case "slug":
		return "Slug may contain letters, digits, hyphens and underscores only."
	case "hexcolor", "len":
		return "Enter a color in #RRGGBB form."
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
