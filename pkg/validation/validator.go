// Package validation checks submitted values against a form definition. It
// implements the built-in semantics of each field kind: required values,
// length bounds, patterns, URL syntax and membership in the resolved choices.
package validation

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formdef/pkg/markup"
	"github.com/goliatone/go-formdef/pkg/messages"
	"github.com/goliatone/go-formdef/pkg/model"
)

// Option configures a Validator.
type Option func(*Validator)

// WithMessages replaces the default message for a failure kind on one field
// kind. Field-level overrides still take precedence.
func WithMessages(kind model.FieldKind, overrides map[model.ErrorKind]string) Option {
	return func(v *Validator) {
		for errKind, message := range overrides {
			v.defaults[messageKey{field: kind, err: errKind}] = message
		}
	}
}

// WithURLSchemes restricts the schemes URL fields accept.
func WithURLSchemes(schemes ...string) Option {
	return func(v *Validator) {
		if len(schemes) == 0 {
			return
		}
		v.schemes = make([]string, 0, len(schemes))
		for _, scheme := range schemes {
			v.schemes = append(v.schemes, strings.ToLower(strings.TrimSpace(scheme)))
		}
	}
}

// WithEngine supplies the message template engine.
func WithEngine(engine *messages.Engine) Option {
	return func(v *Validator) {
		if engine != nil {
			v.engine = engine
		}
	}
}

// Validator checks values against form definitions. It is safe for
// concurrent use once constructed.
type Validator struct {
	engine   *messages.Engine
	defaults map[messageKey]string
	schemes  []string
}

// New constructs a Validator with the default messages.
func New(options ...Option) (*Validator, error) {
	v := &Validator{
		defaults: defaultMessages(),
		schemes:  DefaultURLSchemes(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.engine == nil {
		engine, err := messages.New()
		if err != nil {
			return nil, fmt.Errorf("validation: configure messages: %w", err)
		}
		v.engine = engine
	}
	return v, nil
}

// Validate checks every field of form against values, keyed by field name.
// Keys that do not belong to the form are ignored. The returned error is
// reserved for collaborator failures (choice sources, message templates);
// rule violations are reported through Result.
func (v *Validator) Validate(ctx context.Context, form model.FormDefinition, values map[string]string) (Result, error) {
	result := Result{Valid: true}
	for _, field := range form.Fields() {
		fieldErr, err := v.ValidateField(ctx, field, values[field.Name()])
		if err != nil {
			return Result{}, fmt.Errorf("validation: form %q: %w", form.ID(), err)
		}
		if fieldErr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *fieldErr)
		}
	}
	return result, nil
}

// ValidateField checks one value. Surrounding whitespace is not part of the
// value: rules apply to the trimmed string, the same one a create payload
// stores. It returns nil when the value passes; only the first violation is
// reported.
func (v *Validator) ValidateField(ctx context.Context, field model.Field, value string) (*FieldError, error) {
	if field == nil {
		return nil, fmt.Errorf("validation: field is nil")
	}

	value = strings.TrimSpace(value)
	if value == "" {
		if field.Required() {
			return v.fail(field, model.ErrorRequired, value, nil)
		}
		return nil, nil
	}

	switch typed := field.(type) {
	case model.TextField:
		if fieldErr, err := v.checkLength(field, typed.MinLength(), typed.MaxLength(), value); fieldErr != nil || err != nil {
			return fieldErr, err
		}
		if re := typed.Pattern(); re != nil && !re.MatchString(value) {
			return v.fail(field, model.ErrorInvalid, value, nil)
		}
	case model.LongTextField:
		if fieldErr, err := v.checkLength(field, typed.MinLength(), typed.MaxLength(), value); fieldErr != nil || err != nil {
			return fieldErr, err
		}
	case model.URLField:
		if !v.validURL(value) {
			return v.fail(field, model.ErrorInvalid, value, nil)
		}
	case model.ChoiceField:
		choices, err := typed.Choices(ctx)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(model.ChoiceValues(choices), value) {
			return v.fail(field, model.ErrorInvalid, value, nil)
		}
	default:
		return nil, fmt.Errorf("validation: field %q: unsupported kind %q", field.Name(), field.Kind())
	}
	return nil, nil
}

func (v *Validator) checkLength(field model.Field, minLength, maxLength int, value string) (*FieldError, error) {
	length := utf8.RuneCountInString(value)
	data := map[string]any{"minlength": minLength, "maxlength": maxLength}
	if minLength > 0 && length < minLength {
		return v.fail(field, model.ErrorMinLength, value, data)
	}
	if maxLength > 0 && length > maxLength {
		return v.fail(field, model.ErrorMaxLength, value, data)
	}
	return nil, nil
}

func (v *Validator) validURL(value string) bool {
	return CheckURL(value, v.schemes...)
}

// DefaultURLSchemes lists the schemes URL fields accept unless configured
// otherwise.
func DefaultURLSchemes() []string {
	return []string{"http", "https", "ftp"}
}

// CheckURL reports whether value is an absolute URL with a host name and one
// of schemes (DefaultURLSchemes when none are given).
func CheckURL(value string, schemes ...string) bool {
	if len(schemes) == 0 {
		schemes = DefaultURLSchemes()
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	parsed, err := url.ParseRequestURI(value)
	if err != nil || parsed.Hostname() == "" {
		return false
	}
	return slices.Contains(schemes, strings.ToLower(parsed.Scheme))
}

func (v *Validator) fail(field model.Field, kind model.ErrorKind, value string, data map[string]any) (*FieldError, error) {
	template, ok := field.ErrorMessage(kind)
	if !ok {
		template = v.defaults[messageKey{field: field.Kind(), err: kind}]
	}
	if template == "" {
		template = v.defaults[messageKey{err: kind}]
	}

	ctx := map[string]any{
		"field":  field.Name(),
		"label":  markup.PlainText(field.Label()),
		"length": utf8.RuneCountInString(value),
	}
	for key, val := range data {
		ctx[key] = val
	}

	message, err := v.engine.Render(template, ctx)
	if err != nil {
		return nil, fmt.Errorf("validation: field %q: %w", field.Name(), err)
	}
	return &FieldError{Field: field.Name(), Kind: kind, Message: message}, nil
}
