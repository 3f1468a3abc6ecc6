package model

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdef/pkg/markup"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleFormat    = "format"
)

// ValidationRule describes one constraint in a serialisable form. Length
// limits encode their threshold in Params["value"]; pattern rules keep the
// expression in Params["pattern"] and any flags in Params["flags"]. Values
// are strings to keep JSON snapshots stable.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// FieldDescriptor is the renderer-facing snapshot of a field.
type FieldDescriptor struct {
	Name          string            `json:"name" yaml:"name"`
	Kind          FieldKind         `json:"kind" yaml:"kind"`
	Widget        string            `json:"widget" yaml:"widget"`
	Label         string            `json:"label" yaml:"label"`
	LabelText     string            `json:"labelText" yaml:"labelText"`
	Required      bool              `json:"required" yaml:"required"`
	Choices       []Choice          `json:"choices,omitempty" yaml:"choices,omitempty"`
	Validations   []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	ErrorMessages map[string]string `json:"errorMessages,omitempty" yaml:"errorMessages,omitempty"`
	ControlAttrs  map[string]string `json:"controlAttrs,omitempty" yaml:"controlAttrs,omitempty"`
}

// FormDescriptor is the renderer-facing snapshot of a form definition.
type FormDescriptor struct {
	ID     string            `json:"id" yaml:"id"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Describe resolves choice sources and returns a serialisable snapshot of the
// definition. Labels are sanitised so only inline links and icons survive.
// Decorators run in order on the finished snapshot.
func (f FormDefinition) Describe(ctx context.Context, decorators ...Decorator) (FormDescriptor, error) {
	out := FormDescriptor{
		ID:     f.id,
		Fields: make([]FieldDescriptor, 0, len(f.fields)),
	}
	for _, fld := range f.fields {
		desc, err := describeField(ctx, fld)
		if err != nil {
			return FormDescriptor{}, fmt.Errorf("model: describe form %q: %w", f.id, err)
		}
		out.Fields = append(out.Fields, desc)
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return FormDescriptor{}, fmt.Errorf("model: decorate form %q: %w", f.id, err)
		}
	}
	return out, nil
}

func describeField(ctx context.Context, fld Field) (FieldDescriptor, error) {
	desc := FieldDescriptor{
		Name:         fld.Name(),
		Kind:         fld.Kind(),
		Widget:       fld.Kind().Widget(),
		Label:        markup.SanitizeLabel(fld.Label()),
		LabelText:    markup.PlainText(fld.Label()),
		Required:     fld.Required(),
		ControlAttrs: fld.ControlAttrs(),
	}
	if len(desc.ControlAttrs) == 0 {
		desc.ControlAttrs = nil
	}
	if fld.Required() {
		desc.Validations = append(desc.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}

	switch typed := fld.(type) {
	case ChoiceField:
		choices, err := typed.Choices(ctx)
		if err != nil {
			return FieldDescriptor{}, err
		}
		desc.Choices = choices
	case TextField:
		desc.Validations = append(desc.Validations, lengthRules(typed.MinLength(), typed.MaxLength())...)
		if re := typed.Pattern(); re != nil {
			desc.Validations = append(desc.Validations, PatternRule(re))
		}
	case URLField:
		desc.Validations = append(desc.Validations, ValidationRule{
			Kind:   ValidationRuleFormat,
			Params: map[string]string{"value": "uri"},
		})
	case LongTextField:
		desc.Validations = append(desc.Validations, lengthRules(typed.MinLength(), typed.MaxLength())...)
	}

	desc.ErrorMessages = errorMessages(fld)
	return desc, nil
}

func lengthRules(minLength, maxLength int) []ValidationRule {
	var rules []ValidationRule
	if minLength > 0 {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(minLength)},
		})
	}
	if maxLength > 0 {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(maxLength)},
		})
	}
	return rules
}

// PatternRule splits Go's leading inline flag group ("(?i)") off the
// expression so the pattern stays portable to ECMAScript and JSON Schema.
func PatternRule(re *regexp.Regexp) ValidationRule {
	expr, flags := SplitPatternFlags(re.String())
	params := map[string]string{"pattern": expr}
	if flags != "" {
		params["flags"] = flags
	}
	return ValidationRule{Kind: ValidationRulePattern, Params: params}
}

// SplitPatternFlags separates a leading "(?flags)" group from expr.
func SplitPatternFlags(expr string) (string, string) {
	if !strings.HasPrefix(expr, "(?") {
		return expr, ""
	}
	end := strings.Index(expr, ")")
	if end < 0 {
		return expr, ""
	}
	flags := expr[2:end]
	if flags == "" || strings.ContainsAny(flags, ":-") {
		return expr, ""
	}
	return expr[end+1:], flags
}

func errorMessages(fld Field) map[string]string {
	out := make(map[string]string)
	for _, kind := range []ErrorKind{ErrorRequired, ErrorMinLength, ErrorMaxLength, ErrorInvalid} {
		if message, ok := fld.ErrorMessage(kind); ok {
			out[string(kind)] = message
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
