package service

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// fieldCheck pairs a request field with its ozzo rules. Checks run in order
// and the first failure is reported as "<field> <reason>".
type fieldCheck struct {
	name  string
	value interface{}
	rules []validation.Rule
}

func field(name string, value interface{}, rules ...validation.Rule) fieldCheck {
	return fieldCheck{name: name, value: value, rules: rules}
}

func validateFields(checks ...fieldCheck) error {
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return invalid(c.name, c.name+" "+err.Error())
		}
	}
	return nil
}

var required = validation.Required.Error("is required")

// storeErr maps store sentinels to the entity-specific API errors.
func storeErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrUnavailable):
		return fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
	default:
		return err
	}
}

// in builds an ozzo In rule from a typed enum list.
func in[T ~string](values []T, msg string) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).Error(msg)
}
