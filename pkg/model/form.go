package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrEmptyFormID       = errors.New("model: form id is required")
	ErrEmptyName         = errors.New("model: field name is required")
	ErrDuplicateField    = errors.New("model: duplicate field name")
	ErrInvalidOption     = errors.New("model: option not supported by field kind")
	ErrInvalidConstraint = errors.New("model: invalid constraint")
	ErrMissingChoices    = errors.New("model: choice source is required")
)

// FormDefinition is an ordered, immutable collection of fields identified by
// a form id. The zero value is an empty definition without an id; use NewForm.
type FormDefinition struct {
	id     string
	fields []Field
}

// NewForm validates the fields and returns the definition. Field names must
// be unique and every option must apply to its field's kind.
func NewForm(id string, fields ...Field) (FormDefinition, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return FormDefinition{}, ErrEmptyFormID
	}

	seen := make(map[string]struct{}, len(fields))
	for idx, f := range fields {
		if f == nil {
			return FormDefinition{}, fmt.Errorf("model: form %q: field %d is nil", id, idx)
		}
		if err := f.check(); err != nil {
			return FormDefinition{}, fmt.Errorf("model: form %q: %w", id, err)
		}
		if _, exists := seen[f.Name()]; exists {
			return FormDefinition{}, fmt.Errorf("model: form %q: %w: %q", id, ErrDuplicateField, f.Name())
		}
		seen[f.Name()] = struct{}{}
	}

	return FormDefinition{id: id, fields: slices.Clone(fields)}, nil
}

// MustForm is like NewForm but panics on error. Intended for package-level
// declarations whose fields are known at compile time.
func MustForm(id string, fields ...Field) FormDefinition {
	form, err := NewForm(id, fields...)
	if err != nil {
		panic(err)
	}
	return form
}

// ID returns the form identifier.
func (f FormDefinition) ID() string { return f.id }

// Len reports the number of fields.
func (f FormDefinition) Len() int { return len(f.fields) }

// Fields returns the fields in display order. The slice is a copy; the field
// values themselves are immutable.
func (f FormDefinition) Fields() []Field {
	return slices.Clone(f.fields)
}

// Field looks a field up by name.
func (f FormDefinition) Field(name string) (Field, bool) {
	for _, candidate := range f.fields {
		if candidate.Name() == name {
			return candidate, true
		}
	}
	return nil, false
}

// Names lists field names in display order.
func (f FormDefinition) Names() []string {
	return lo.Map(f.fields, func(item Field, _ int) string {
		return item.Name()
	})
}
