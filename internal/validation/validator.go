// Package validation holds the shared struct validator used for contact
// form fields on both sides of the wire.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Validator returns the process-wide validator instance.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

// FailedTags returns the validation tags that failed, keyed by field name.
// Errors that are not field validation errors yield nil.
func FailedTags(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return Validator().Var(s, "email") == nil
}
