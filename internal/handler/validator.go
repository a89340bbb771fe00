package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BrandishEvents_Go/internal/idgen"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// GetValidator returns the shared validator. Field errors are reported under
// the JSON names the game host sends.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("transfercode", validateTransferCode)
		validate = &Validator{validate: v}
	})
	return validate
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// fieldMessages holds the fixed text per tag; tags with a parameter are
// formatted in FormatValidationError.
var fieldMessages = map[string]string{
	"required":     "This field is required",
	"transfercode": "Invalid transfer code",
	"numeric":      "Must be numeric",
	"excludesall":  "Contains invalid characters",
}

// FormatValidationError maps each failing field to a message, without
// leaking Go struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		msg, ok := fieldMessages[e.Tag()]
		if !ok {
			switch e.Tag() {
			case "max":
				msg = fmt.Sprintf("Must be at most %s", e.Param())
			case "min":
				msg = fmt.Sprintf("Must be at least %s", e.Param())
			case "gt":
				msg = fmt.Sprintf("Must be greater than %s", e.Param())
			case "ne":
				msg = fmt.Sprintf("Must not be %s", e.Param())
			case "nefield":
				msg = "Must differ from " + snakeCase(e.Param())
			default:
				msg = "Invalid value"
			}
		}
		errs[e.Field()] = msg
	}
	return errs
}

// snakeCase turns a Go field name used as a cross-field param, such as
// KillerID, into its JSON spelling.
func snakeCase(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			prevLower = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		prevLower = true
		b.WriteRune(r)
	}
	return b.String()
}

// validateTransferCode accepts codes in any case with surrounding spaces;
// the economy normalises them before lookup.
func validateTransferCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if len(code) != idgen.CodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(idgen.CodeAlphabet, c) {
			return false
		}
	}
	return true
}
