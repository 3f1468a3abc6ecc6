package openapi_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdef/pkg/forms/description"
	"github.com/goliatone/go-formdef/pkg/model"
	"github.com/goliatone/go-formdef/pkg/openapi"
)

func descriptionForm(t *testing.T) model.FormDefinition {
	t.Helper()
	form, err := description.NewForm(model.StaticChoices{
		{Value: "wstore", Label: "WStore"},
		{Value: "bluestore", Label: "Blue Store"},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestRequestSchema(t *testing.T) {
	schema, err := openapi.RequestSchema(context.Background(), descriptionForm(t))
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}

	if diff := cmp.Diff([]string{"storeName", "displayName", "url"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	name := schema.Properties["displayName"].Value
	if name.MinLength != 3 || name.MaxLength == nil || *name.MaxLength != 100 {
		t.Fatalf("unexpected name bounds: min=%d max=%v", name.MinLength, name.MaxLength)
	}
	if name.Pattern != "^[a-zA-Z0-9. -]+$" {
		t.Fatalf("unexpected pattern %q", name.Pattern)
	}

	if got := schema.Properties["url"].Value.Format; got != "uri" {
		t.Fatalf("expected uri format, got %q", got)
	}

	comment := schema.Properties["comment"].Value
	if comment.MaxLength == nil || *comment.MaxLength != 200 {
		t.Fatalf("unexpected comment max length %v", comment.MaxLength)
	}
	ext, ok := comment.Extensions[openapi.ExtensionKey].(map[string]any)
	if !ok || ext["rows"] != 4 || ext["widget"] != "textarea" {
		t.Fatalf("unexpected comment extension %#v", comment.Extensions)
	}

	store := schema.Properties["storeName"].Value
	if diff := cmp.Diff([]any{"wstore", "bluestore"}, store.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if store.Title != "Store" {
		t.Fatalf("unexpected store title %q", store.Title)
	}
	if got := schema.Properties["url"].Value.Title; got != "URL to Linked USDL file" {
		t.Fatalf("unexpected url title %q", got)
	}
}

func TestValidateValues(t *testing.T) {
	schema, err := openapi.RequestSchema(context.Background(), descriptionForm(t))
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}

	valid := map[string]string{
		"storeName":   "wstore",
		"displayName": "Acme Store-1.0",
		"url":         "https://example.com/usdl.ttl",
	}
	if issues := openapi.ValidateValues(schema, valid); len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}

	issues := openapi.ValidateValues(schema, map[string]string{
		"storeName":   "initech",
		"displayName": "AB",
		"url":         " ",
		"comment":     strings.Repeat("c", 201),
	})
	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	sort.Strings(fields)
	if diff := cmp.Diff([]string{"comment", "displayName", "storeName", "url"}, fields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateValuesChecksURLFormat(t *testing.T) {
	schema, err := openapi.RequestSchema(context.Background(), descriptionForm(t))
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}

	for _, raw := range []string{"not a url", "http://:80/", "mailto:someone@example.com"} {
		issues := openapi.ValidateValues(schema, map[string]string{
			"storeName":   "wstore",
			"displayName": "Acme Store-1.0",
			"url":         raw,
		})
		if len(issues) != 1 || issues[0].Field != "url" {
			t.Fatalf("url %q: expected one url issue, got %#v", raw, issues)
		}
	}

	issues := openapi.ValidateValues(schema, map[string]string{
		"storeName":   "wstore",
		"displayName": " AB",
		"url":         " https://example.com/usdl.ttl ",
	})
	if len(issues) != 1 || issues[0].Field != "displayName" {
		t.Fatalf("expected trimmed name to fail minLength only, got %#v", issues)
	}
}

func TestDocumentValidates(t *testing.T) {
	doc, err := openapi.Document(context.Background(), descriptionForm(t), openapi.DocumentOptions{
		Title: "Marketplace descriptions",
	})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("expected valid document: %v", err)
	}

	item := doc.Paths.Find("/description_create_form")
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST operation on default path")
	}
	if item.Post.OperationID != "description_create_form" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	if _, ok := doc.Components.Schemas["DescriptionCreateForm"]; !ok {
		t.Fatalf("expected DescriptionCreateForm component, got %v", doc.Components.Schemas)
	}
	content := item.Post.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if content.Get(mediaType) == nil {
			t.Fatalf("expected %s request content", mediaType)
		}
	}
}
