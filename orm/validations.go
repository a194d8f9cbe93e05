package orm

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shaurya/recordscope/i18n"
)

// Rules maps column names to validator tag expressions, e.g.
// Rules{"name": "required", "email": "required,email"}.
type Rules map[string]string

// Validatable is implemented by models that carry validation rules.
type Validatable interface {
	ValidationRules() Rules
}

var validate = validator.New()

// Validation is the stored outcome of running rules over a record's fields.
type Validation struct {
	errors map[string][]string
}

// OK reports whether every rule passed.
func (v *Validation) OK() bool {
	return len(v.errors) == 0
}

// Errors returns a copy of the messages per failing column.
func (v *Validation) Errors() map[string][]string {
	if len(v.errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(v.errors))
	for k, msgs := range v.errors {
		out[k] = append([]string(nil), msgs...)
	}
	return out
}

// Validate runs rules over fields and returns the messages for each failing
// column, or nil when everything passes.
func Validate(fields Fields, rules Rules) map[string][]string {
	if len(rules) == 0 {
		return nil
	}
	tags := make(map[string]any, len(rules))
	for field, tag := range rules {
		if tag != "" {
			tags[field] = tag
		}
	}
	result := validate.ValidateMap(fields, tags)
	if len(result) == 0 {
		return nil
	}

	errs := make(map[string][]string)
	for field, raw := range result {
		err, ok := raw.(error)
		if !ok {
			errs[field] = append(errs[field], fmt.Sprintf("%s is invalid", field))
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs[field] = append(errs[field], err.Error())
			continue
		}
		for _, fe := range verrs {
			errs[field] = append(errs[field], message(field, fe.Tag(), fe.Param()))
		}
	}
	return errs
}

func message(field, tag, param string) string {
	// Key for i18n lookup: errors.validations.required
	key := "errors.validations." + tag
	msg := i18n.T(key, i18n.Vars{
		"field": label(field),
		"param": param,
	})
	if msg == key {
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
	return msg
}

func label(field string) string {
	key := "models.fields." + field
	if l := i18n.T(key, nil); l != key {
		return l
	}
	return field
}
