package formdef_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	formdef "github.com/goliatone/go-formdef"
	"github.com/goliatone/go-formdef/pkg/stores"
)

func TestDescriptionCreateForm(t *testing.T) {
	form, err := formdef.DescriptionCreateForm(
		formdef.Store{Name: "wstore", DisplayName: "WStore"},
		formdef.Store{Name: "bluestore"},
	)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	if form.ID() != "description_create_form" {
		t.Fatalf("unexpected id %q", form.ID())
	}
	if diff := cmp.Diff([]string{"storeName", "displayName", "url", "comment"}, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptionCreateFormDuplicateStore(t *testing.T) {
	_, err := formdef.DescriptionCreateForm(formdef.Store{Name: "a"}, formdef.Store{Name: "a"})
	if !errors.Is(err, stores.ErrDuplicateStore) {
		t.Fatalf("expected ErrDuplicateStore, got %v", err)
	}
}

func TestCreateDescription(t *testing.T) {
	form, err := formdef.DescriptionCreateForm(formdef.Store{Name: "wstore"})
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	ctx := context.Background()

	req, result, err := formdef.CreateDescription(ctx, form, map[string]string{
		"storeName":   "wstore",
		"displayName": "Acme Store-1.0",
		"url":         "https://example.com/usdl.ttl",
		"comment":     "first draft",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !result.Valid || req == nil {
		t.Fatalf("expected valid request, got %+v", result)
	}
	want := formdef.CreateRequest{
		Store:       "wstore",
		Name:        "acme-store-10",
		DisplayName: "Acme Store-1.0",
		URL:         "https://example.com/usdl.ttl",
		Description: "first draft",
	}
	if diff := cmp.Diff(want, *req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}

	req, result, err = formdef.CreateDescription(ctx, form, map[string]string{"storeName": "other"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req != nil || result.Valid {
		t.Fatalf("expected rejection, got %+v", result)
	}
	if diff := cmp.Diff([]string{"storeName", "displayName", "url"}, fieldNames(result)); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}
}

func fieldNames(result formdef.Result) []string {
	names := make([]string, 0, len(result.Errors))
	for _, fe := range result.Errors {
		names = append(names, fe.Field)
	}
	return names
}
