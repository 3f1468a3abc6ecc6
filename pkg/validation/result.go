package validation

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-formdef/pkg/model"
)

// FieldError is a rule violation on one field.
type FieldError struct {
	Field   string          `json:"field" yaml:"field"`
	Kind    model.ErrorKind `json:"kind" yaml:"kind"`
	Message string          `json:"message" yaml:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Result lists violations in field display order.
type Result struct {
	Valid  bool         `json:"valid" yaml:"valid"`
	Errors []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ByField groups messages by field name, the shape renderers expect for
// inline error chrome.
func (r Result) ByField() map[string][]string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Errors))
	for _, fe := range r.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Field returns the violation recorded for name, if any.
func (r Result) Field(name string) (FieldError, bool) {
	for _, fe := range r.Errors {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Summary joins the violations; it returns "" for a valid result.
func (r Result) Summary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns the shared Validator built with default options. It is
// constructed on first use so its message cache is reused across calls.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	return defaultValidator, defaultErr
}

// Validate runs the Default validator.
func Validate(ctx context.Context, form model.FormDefinition, values map[string]string) (Result, error) {
	v, err := Default()
	if err != nil {
		return Result{}, err
	}
	return v.Validate(ctx, form, values)
}
