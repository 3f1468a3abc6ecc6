package model

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strconv"
)

// Field is one entry of a form definition. The set of implementations is
// closed: ChoiceField, TextField, URLField and LongTextField. Use a type
// switch to reach the kind-specific constraints.
type Field interface {
	Kind() FieldKind
	Name() string
	Label() string
	Required() bool
	// ErrorMessage returns the override configured for the failure kind.
	ErrorMessage(kind ErrorKind) (string, bool)
	// ControlAttrs returns a copy of the rendering hints.
	ControlAttrs() map[string]string

	check() error
}

type field struct {
	name string
	cfg  fieldConfig
}

func newField(name string, opts []Option) field {
	return field{name: name, cfg: newFieldConfig(opts).clone()}
}

func (f field) Name() string { return f.name }

// Label returns the configured label, falling back to the field name.
func (f field) Label() string {
	if f.cfg.label == "" {
		return f.name
	}
	return f.cfg.label
}

func (f field) Required() bool { return f.cfg.required }

func (f field) ErrorMessage(kind ErrorKind) (string, bool) {
	message, ok := f.cfg.messages[kind]
	return message, ok
}

func (f field) ControlAttrs() map[string]string {
	return maps.Clone(f.cfg.attrs)
}

func (f field) checkFor(kind FieldKind) error {
	if f.name == "" {
		return ErrEmptyName
	}
	if err := f.cfg.check(kind); err != nil {
		return fmt.Errorf("model: field %q: %w", f.name, err)
	}
	return nil
}

// ChoiceField selects one value out of a list resolved from a ChoiceSource.
type ChoiceField struct {
	field
	source ChoiceSource
}

// NewChoiceField declares a choice field backed by source.
func NewChoiceField(name string, source ChoiceSource, opts ...Option) ChoiceField {
	return ChoiceField{field: newField(name, opts), source: source}
}

func (ChoiceField) Kind() FieldKind { return FieldKindChoice }

// Choices resolves the available choices. Sources are consulted on every call
// so the list reflects the collaborator's state at that moment.
func (f ChoiceField) Choices(ctx context.Context) ([]Choice, error) {
	if f.source == nil {
		return nil, nil
	}
	choices, err := f.source.Choices(ctx)
	if err != nil {
		return nil, fmt.Errorf("model: field %q: resolve choices: %w", f.name, err)
	}
	return choices, nil
}

func (f ChoiceField) check() error {
	if err := f.checkFor(FieldKindChoice); err != nil {
		return err
	}
	if f.source == nil {
		return fmt.Errorf("model: field %q: %w", f.name, ErrMissingChoices)
	}
	return nil
}

// TextField is a single-line input with optional length bounds and pattern.
type TextField struct {
	field
}

// NewTextField declares a single-line text field.
func NewTextField(name string, opts ...Option) TextField {
	return TextField{field: newField(name, opts)}
}

func (TextField) Kind() FieldKind { return FieldKindText }

// MinLength returns the minimum length in characters; zero means unbounded.
func (f TextField) MinLength() int { return f.cfg.minLength }

// MaxLength returns the maximum length in characters; zero means unbounded.
func (f TextField) MaxLength() int { return f.cfg.maxLength }

// Pattern returns the value constraint, or nil.
func (f TextField) Pattern() *regexp.Regexp { return f.cfg.pattern }

func (f TextField) check() error { return f.checkFor(FieldKindText) }

// URLField accepts absolute URLs.
type URLField struct {
	field
}

// NewURLField declares a URL field.
func NewURLField(name string, opts ...Option) URLField {
	return URLField{field: newField(name, opts)}
}

func (URLField) Kind() FieldKind { return FieldKindURL }

func (f URLField) check() error { return f.checkFor(FieldKindURL) }

// LongTextField is a multi-line input.
type LongTextField struct {
	field
}

// NewLongTextField declares a multi-line text field.
func NewLongTextField(name string, opts ...Option) LongTextField {
	return LongTextField{field: newField(name, opts)}
}

func (LongTextField) Kind() FieldKind { return FieldKindLongText }

func (f LongTextField) MinLength() int { return f.cfg.minLength }

func (f LongTextField) MaxLength() int { return f.cfg.maxLength }

// Rows returns the visible row hint, or zero when unset.
func (f LongTextField) Rows() int {
	rows, err := strconv.Atoi(f.cfg.attrs[optionRows])
	if err != nil {
		return 0
	}
	return rows
}

func (f LongTextField) check() error { return f.checkFor(FieldKindLongText) }

var (
	_ Field = ChoiceField{}
	_ Field = TextField{}
	_ Field = URLField{}
	_ Field = LongTextField{}
)
