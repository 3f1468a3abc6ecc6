package model

import (
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"
)

// Option configures a field at construction time. Options that do not apply
// to the field's kind are recorded and reported by NewForm.
type Option func(*fieldConfig)

type fieldConfig struct {
	label     string
	required  bool
	minLength int
	maxLength int
	pattern   *regexp.Regexp
	messages  map[ErrorKind]string
	attrs     map[string]string
	applied   []string
	errs      []error
}

const (
	optionLabel        = "label"
	optionRequired     = "required"
	optionMinLength    = "minlength"
	optionMaxLength    = "maxlength"
	optionPattern      = "regexp"
	optionMessages     = "errorMessages"
	optionControlAttrs = "controlAttrs"
	optionRows         = "rows"
)

var commonOptions = []string{optionLabel, optionRequired, optionMessages, optionControlAttrs}

var kindOptions = map[FieldKind][]string{
	FieldKindChoice:   nil,
	FieldKindText:     {optionMinLength, optionMaxLength, optionPattern},
	FieldKindURL:      nil,
	FieldKindLongText: {optionMinLength, optionMaxLength, optionRows},
}

func newFieldConfig(opts []Option) fieldConfig {
	cfg := fieldConfig{required: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func (cfg *fieldConfig) mark(name string) {
	cfg.applied = append(cfg.applied, name)
}

// WithLabel sets the display label. Labels may carry inline markup (links,
// icons); Describe sanitises it before handing it to renderers.
func WithLabel(label string) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionLabel)
		cfg.label = label
	}
}

// WithRequired toggles whether an empty value is rejected. Fields are
// required unless configured otherwise.
func WithRequired(required bool) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionRequired)
		cfg.required = required
	}
}

// Optional is shorthand for WithRequired(false).
func Optional() Option {
	return WithRequired(false)
}

// WithMinLength sets the minimum number of characters.
func WithMinLength(n int) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionMinLength)
		if n < 0 {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: minlength %d is negative", ErrInvalidConstraint, n))
			return
		}
		cfg.minLength = n
	}
}

// WithMaxLength sets the maximum number of characters.
func WithMaxLength(n int) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionMaxLength)
		if n < 0 {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: maxlength %d is negative", ErrInvalidConstraint, n))
			return
		}
		cfg.maxLength = n
	}
}

// WithLength sets both length bounds.
func WithLength(minLength, maxLength int) Option {
	return func(cfg *fieldConfig) {
		WithMinLength(minLength)(cfg)
		WithMaxLength(maxLength)(cfg)
	}
}

// WithRegexp constrains values to those matching re.
func WithRegexp(re *regexp.Regexp) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionPattern)
		if re == nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: regexp is nil", ErrInvalidConstraint))
			return
		}
		cfg.pattern = re
	}
}

// WithPattern compiles expr and constrains values to those matching it.
func WithPattern(expr string) Option {
	return func(cfg *fieldConfig) {
		re, err := regexp.Compile(expr)
		if err != nil {
			cfg.mark(optionPattern)
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: pattern %q: %v", ErrInvalidConstraint, expr, err))
			return
		}
		WithRegexp(re)(cfg)
	}
}

// WithErrorMessage overrides the message shown for a validation failure kind.
// Messages are templates; see the validation package for available variables.
func WithErrorMessage(kind ErrorKind, message string) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionMessages)
		if cfg.messages == nil {
			cfg.messages = make(map[ErrorKind]string)
		}
		cfg.messages[kind] = message
	}
}

// WithErrorMessages applies several message overrides at once.
func WithErrorMessages(messages map[ErrorKind]string) Option {
	return func(cfg *fieldConfig) {
		for kind, message := range messages {
			WithErrorMessage(kind, message)(cfg)
		}
	}
}

// WithControlAttr adds a rendering hint passed through to the control.
func WithControlAttr(name, value string) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionControlAttrs)
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if cfg.attrs == nil {
			cfg.attrs = make(map[string]string)
		}
		cfg.attrs[name] = value
	}
}

// WithRows sets the visible row count of a long text control.
func WithRows(rows int) Option {
	return func(cfg *fieldConfig) {
		cfg.mark(optionRows)
		if rows <= 0 {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: rows %d must be positive", ErrInvalidConstraint, rows))
			return
		}
		if cfg.attrs == nil {
			cfg.attrs = make(map[string]string)
		}
		cfg.attrs[optionRows] = strconv.Itoa(rows)
	}
}

func (cfg fieldConfig) check(kind FieldKind) error {
	if len(cfg.errs) > 0 {
		return cfg.errs[0]
	}
	for _, name := range cfg.applied {
		if !optionAllowed(kind, name) {
			return fmt.Errorf("%w: %s on %s field", ErrInvalidOption, name, kind)
		}
	}
	if cfg.minLength > 0 && cfg.maxLength > 0 && cfg.minLength > cfg.maxLength {
		return fmt.Errorf("%w: minlength %d exceeds maxlength %d", ErrInvalidConstraint, cfg.minLength, cfg.maxLength)
	}
	return nil
}

func optionAllowed(kind FieldKind, name string) bool {
	for _, candidate := range commonOptions {
		if candidate == name {
			return true
		}
	}
	for _, candidate := range kindOptions[kind] {
		if candidate == name {
			return true
		}
	}
	return false
}

func (cfg fieldConfig) clone() fieldConfig {
	out := cfg
	out.messages = maps.Clone(cfg.messages)
	out.attrs = maps.Clone(cfg.attrs)
	out.applied = append([]string(nil), cfg.applied...)
	out.errs = append([]error(nil), cfg.errs...)
	return out
}
