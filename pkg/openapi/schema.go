package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdef/pkg/markup"
	"github.com/goliatone/go-formdef/pkg/model"
	"github.com/goliatone/go-formdef/pkg/validation"
)

// ExtensionKey is the vendor extension carrying UI metadata.
const ExtensionKey = "x-formgen"

// RequestSchema converts form into an object schema with one string property
// per field. Choice sources are resolved once, at call time.
func RequestSchema(ctx context.Context, form model.FormDefinition) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	schema.Title = form.ID()
	schema.Extensions = map[string]any{
		ExtensionKey: map[string]any{"form": form.ID(), "order": form.Names()},
	}

	for _, field := range form.Fields() {
		prop, err := fieldSchema(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("openapi: form %q: %w", form.ID(), err)
		}
		schema.WithProperty(field.Name(), prop)
		if field.Required() {
			schema.Required = append(schema.Required, field.Name())
		}
	}
	return schema, nil
}

func fieldSchema(ctx context.Context, field model.Field) (*openapi3.Schema, error) {
	prop := openapi3.NewStringSchema()
	prop.Title = markup.PlainText(field.Label())

	ext := map[string]any{
		"label":  markup.SanitizeLabel(field.Label()),
		"widget": field.Kind().Widget(),
	}
	if attrs := field.ControlAttrs(); len(attrs) > 0 {
		ext["controlAttrs"] = attrs
	}
	if message, ok := field.ErrorMessage(model.ErrorInvalid); ok {
		ext["errorMessage"] = message
	}

	switch typed := field.(type) {
	case model.ChoiceField:
		choices, err := typed.Choices(ctx)
		if err != nil {
			return nil, err
		}
		if len(choices) > 0 {
			values := make([]any, 0, len(choices))
			labels := make(map[string]string, len(choices))
			for _, choice := range choices {
				values = append(values, choice.Value)
				labels[choice.Value] = choice.Label
			}
			prop.WithEnum(values...)
			ext["choiceLabels"] = labels
		}
	case model.TextField:
		applyLength(prop, typed.MinLength(), typed.MaxLength())
		if re := typed.Pattern(); re != nil {
			expr, flags := model.SplitPatternFlags(re.String())
			prop.WithPattern(expr)
			if flags != "" {
				ext["patternFlags"] = flags
			}
		}
	case model.URLField:
		prop.WithFormat("uri")
	case model.LongTextField:
		applyLength(prop, typed.MinLength(), typed.MaxLength())
		if rows := typed.Rows(); rows > 0 {
			ext["rows"] = rows
		}
	}

	prop.Extensions = map[string]any{ExtensionKey: ext}
	return prop, nil
}

func applyLength(prop *openapi3.Schema, minLength, maxLength int) {
	if minLength > 0 {
		prop.WithMinLength(int64(minLength))
	}
	if maxLength > 0 {
		prop.WithMaxLength(int64(maxLength))
	}
}

// Issue is one schema violation reported by ValidateValues.
type Issue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

var formatsOnce sync.Once

// registerFormats installs the "uri" string format, which kin-openapi leaves
// unchecked, using the same rule as URL fields.
func registerFormats() {
	formatsOnce.Do(func() {
		openapi3.DefineStringFormatValidator("uri", openapi3.NewCallbackValidator(func(value string) error {
			if !validation.CheckURL(value) {
				return errors.New("not an absolute http, https or ftp URL")
			}
			return nil
		}))
	})
}

// ValidateValues checks submitted values against a schema built by
// RequestSchema. Values are trimmed and blank ones treated as absent, the
// same way the form validator reads them.
func ValidateValues(schema *openapi3.Schema, values map[string]string) []Issue {
	if schema == nil {
		return []Issue{{Message: "schema is nil"}}
	}
	registerFormats()
	payload := make(map[string]any, len(values))
	for key, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		payload[key] = value
	}

	err := schema.VisitJSON(payload, openapi3.MultiErrors(), openapi3.EnableFormatValidation())
	if err == nil {
		return nil
	}
	return collectIssues(err)
}

func collectIssues(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, item := range multi {
			out = append(out, collectIssues(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
			Message: schemaErr.Reason,
		}}
	}
	return []Issue{{Message: err.Error()}}
}

// DocumentOptions configures Document.
type DocumentOptions struct {
	Title       string
	Version     string
	Path        string
	OperationID string
}

// Document wraps the request schema of form in a minimal OpenAPI document
// exposing a single POST operation that accepts JSON or form-encoded bodies.
func Document(ctx context.Context, form model.FormDefinition, opts DocumentOptions) (*openapi3.T, error) {
	schema, err := RequestSchema(ctx, form)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = form.ID()
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "1.0.0"
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = "/" + form.ID()
	}
	opID := strings.TrimSpace(opts.OperationID)
	if opID == "" {
		opID = form.ID()
	}

	componentName := schemaComponentName(form.ID())
	ref := openapi3.NewSchemaRef("#/components/schemas/"+componentName, schema)

	op := openapi3.NewOperation()
	op.OperationID = opID
	op.Summary = markup.PlainText(title)
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(ref).
			WithFormDataSchemaRef(ref),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Created")}),
		openapi3.WithStatus(400, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Validation failed")}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(openapi3.WithPath(path, &openapi3.PathItem{Post: op})),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{componentName: openapi3.NewSchemaRef("", schema)},
		},
	}
	return doc, nil
}

func schemaComponentName(formID string) string {
	parts := strings.FieldsFunc(formID, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	if b.Len() == 0 {
		return "Form"
	}
	return b.String()
}
