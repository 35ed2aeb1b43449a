// Package validation registers the custom binding rules used by the request
// payloads in internal/models.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	alphaSpace = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	once       sync.Once
	regErr     error
)

// Register installs the custom rules on gin's default validator. It is safe
// to call more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			regErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		regErr = v.RegisterValidation("alphaspace", isAlphaSpace)
	})
	return regErr
}

// isAlphaSpace accepts letters and whitespace only.
func isAlphaSpace(fl validator.FieldLevel) bool {
	return alphaSpace.MatchString(fl.Field().String())
}

// Describe turns binding errors into one readable line per field.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "alphaspace":
		return field + " may contain only letters and spaces"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
