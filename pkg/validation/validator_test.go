package validation_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdef/pkg/messages"
	"github.com/goliatone/go-formdef/pkg/model"
	"github.com/goliatone/go-formdef/pkg/validation"
)

func newValidator(t *testing.T, opts ...validation.Option) *validation.Validator {
	t.Helper()
	v, err := validation.New(opts...)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func sampleForm(t *testing.T) model.FormDefinition {
	t.Helper()
	form, err := model.NewForm("sample",
		model.NewChoiceField("store", model.StaticChoices{{Value: "acme", Label: "Acme"}, {Value: "globex", Label: "Globex"}}),
		model.NewTextField("title",
			model.WithLabel("Title"),
			model.WithLength(2, 5),
			model.WithRegexp(regexp.MustCompile("(?i)^[a-z]+$")),
		),
		model.NewURLField("link"),
		model.NewLongTextField("notes", model.Optional(), model.WithMaxLength(4)),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestValidateAcceptsValidValues(t *testing.T) {
	result, err := newValidator(t).Validate(context.Background(), sampleForm(t), map[string]string{
		"store": "globex",
		"title": "Abc",
		"link":  "https://example.com/a",
		"extra": "ignored",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid || len(result.Errors) != 0 {
		t.Fatalf("expected valid result, got %#v", result)
	}
	if result.Summary() != "" {
		t.Fatalf("expected empty summary, got %q", result.Summary())
	}
}

func TestValidateReportsFirstViolationPerFieldInOrder(t *testing.T) {
	result, err := newValidator(t).Validate(context.Background(), sampleForm(t), map[string]string{
		"store": "initech",
		"title": "a",
		"link":  "not a url",
		"notes": "too long",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := []validation.FieldError{
		{Field: "store", Kind: model.ErrorInvalid, Message: validation.MessageChoice},
		{Field: "title", Kind: model.ErrorMinLength, Message: "Ensure this value has at least 2 characters (it has 1)."},
		{Field: "link", Kind: model.ErrorInvalid, Message: validation.MessageURL},
		{Field: "notes", Kind: model.ErrorMaxLength, Message: "Ensure this value has at most 4 characters (it has 8)."},
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	byField := result.ByField()
	if got := byField["link"]; len(got) != 1 || got[0] != validation.MessageURL {
		t.Fatalf("unexpected grouped errors: %#v", byField)
	}
	if !strings.Contains(result.Summary(), "title: Ensure") {
		t.Fatalf("unexpected summary %q", result.Summary())
	}
}

func TestValidateRequired(t *testing.T) {
	result, err := newValidator(t).Validate(context.Background(), sampleForm(t), map[string]string{
		"title": "   ",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := []validation.FieldError{
		{Field: "store", Kind: model.ErrorRequired, Message: validation.MessageRequired},
		{Field: "title", Kind: model.ErrorRequired, Message: validation.MessageRequired},
		{Field: "link", Kind: model.ErrorRequired, Message: validation.MessageRequired},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePatternUsesFieldMessage(t *testing.T) {
	field := model.NewTextField("code",
		model.WithPattern("^[0-9]+$"),
		model.WithErrorMessage(model.ErrorInvalid, "{{ label }} takes digits only."),
		model.WithLabel("Code <b>!</b>"),
	)
	fieldErr, err := newValidator(t).ValidateField(context.Background(), field, "12a")
	if err != nil {
		t.Fatalf("validate field: %v", err)
	}
	if fieldErr == nil {
		t.Fatalf("expected violation")
	}
	if want := "Code ! takes digits only."; fieldErr.Message != want {
		t.Fatalf("got %q, want %q", fieldErr.Message, want)
	}
}

func TestValidateLengthCountsCharacters(t *testing.T) {
	field := model.NewLongTextField("notes", model.WithMaxLength(3))
	fieldErr, err := newValidator(t).ValidateField(context.Background(), field, "ñáé")
	if err != nil {
		t.Fatalf("validate field: %v", err)
	}
	if fieldErr != nil {
		t.Fatalf("expected three runes to pass, got %v", fieldErr)
	}
}

func TestValidateURL(t *testing.T) {
	field := model.NewURLField("link")
	v := newValidator(t)

	valid := []string{
		"https://example.com/usdl.ttl",
		"http://linked-usdl.org/",
		"ftp://files.example.com/a.rdf",
		"https://example.com:8443/path?q=1#frag",
	}
	invalid := []string{
		"example.com/usdl.ttl",
		"https://",
		"mailto:someone@example.com",
		"/relative/path",
		"https://exa mple.com",
		"javascript:alert(1)",
	}

	for _, value := range valid {
		fieldErr, err := v.ValidateField(context.Background(), field, value)
		if err != nil {
			t.Fatalf("validate %q: %v", value, err)
		}
		if fieldErr != nil {
			t.Fatalf("expected %q to pass, got %v", value, fieldErr)
		}
	}
	for _, value := range invalid {
		fieldErr, err := v.ValidateField(context.Background(), field, value)
		if err != nil {
			t.Fatalf("validate %q: %v", value, err)
		}
		if fieldErr == nil || fieldErr.Kind != model.ErrorInvalid {
			t.Fatalf("expected %q to be rejected, got %v", value, fieldErr)
		}
	}
}

func TestWithURLSchemes(t *testing.T) {
	v := newValidator(t, validation.WithURLSchemes("HTTPS"))
	field := model.NewURLField("link")

	fieldErr, err := v.ValidateField(context.Background(), field, "http://example.com")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr == nil {
		t.Fatalf("expected http to be rejected")
	}
}

func TestWithMessagesOverridesDefaults(t *testing.T) {
	v := newValidator(t, validation.WithMessages(model.FieldKindURL, map[model.ErrorKind]string{
		model.ErrorRequired: "Paste the {{ field }} of the document.",
	}))

	fieldErr, err := v.ValidateField(context.Background(), model.NewURLField("url"), "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr == nil || fieldErr.Message != "Paste the url of the document." {
		t.Fatalf("unexpected violation %#v", fieldErr)
	}

	fieldErr, err = v.ValidateField(context.Background(), model.NewTextField("name"), "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr == nil || fieldErr.Message != validation.MessageRequired {
		t.Fatalf("expected default message for other kinds, got %#v", fieldErr)
	}
}

func TestValidateChoiceSourceFailure(t *testing.T) {
	boom := errors.New("catalogue offline")
	form := model.MustForm("f", model.NewChoiceField("store", model.ChoiceSourceFunc(func(context.Context) ([]model.Choice, error) {
		return nil, boom
	})))

	_, err := newValidator(t).Validate(context.Background(), form, map[string]string{"store": "acme"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestPackageValidate(t *testing.T) {
	result, err := validation.Validate(context.Background(), sampleForm(t), nil)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected missing required values to fail")
	}
	if _, ok := result.Field("notes"); ok {
		t.Fatalf("optional field must not be reported")
	}
}

func TestValidateFieldTrimsValue(t *testing.T) {
	v := newValidator(t)
	field := model.NewTextField("title", model.WithLength(3, 5))

	fieldErr, err := v.ValidateField(context.Background(), field, " AB ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr == nil || fieldErr.Kind != model.ErrorMinLength {
		t.Fatalf("expected minlength on the trimmed value, got %#v", fieldErr)
	}
	if want := "Ensure this value has at least 3 characters (it has 2)."; fieldErr.Message != want {
		t.Fatalf("got %q, want %q", fieldErr.Message, want)
	}

	fieldErr, err = v.ValidateField(context.Background(), field, "  abcde  ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr != nil {
		t.Fatalf("expected padded value within bounds to pass, got %#v", fieldErr)
	}
}

func TestCheckURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/usdl.ttl": true,
		"ftp://files.example.com/a":    true,
		"http://example.com:8080/":     true,
		"http://:80/":                  false,
		"http:///path":                 false,
		"mailto:someone@example.com":   false,
		"not a url":                    false,
		"/relative/path":               false,
		"https://exa mple.com":         false,
	}
	for in, want := range cases {
		if got := validation.CheckURL(in); got != want {
			t.Fatalf("CheckURL(%q) = %v, want %v", in, got, want)
		}
	}
	if validation.CheckURL("http://example.com", "https") {
		t.Fatalf("expected explicit schemes to restrict the check")
	}
}

func TestWithEngineRendersOverrides(t *testing.T) {
	engine, err := messages.New(messages.WithGlobals(map[string]any{"site": "Marketplace"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	v := newValidator(t, validation.WithEngine(engine))
	field := model.NewTextField("title", model.WithErrorMessage(model.ErrorRequired, "{{ site }} needs a {{ label|lower }}."), model.WithLabel("Title"))

	fieldErr, err := v.ValidateField(context.Background(), field, "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if fieldErr == nil || fieldErr.Message != "Marketplace needs a title." {
		t.Fatalf("unexpected violation %#v", fieldErr)
	}
}

func TestDefaultIsShared(t *testing.T) {
	first, err := validation.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	second, err := validation.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same validator instance")
	}
}
