package formdef

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formdef/pkg/forms/description"
	"github.com/goliatone/go-formdef/pkg/model"
	"github.com/goliatone/go-formdef/pkg/stores"
	"github.com/goliatone/go-formdef/pkg/validation"
)

// FormDefinition aliases model.FormDefinition for callers that only import the
// root package.
type FormDefinition = model.FormDefinition

// Result aliases validation.Result.
type Result = validation.Result

// Store aliases stores.Store.
type Store = stores.Store

// CreateRequest aliases description.CreateRequest.
type CreateRequest = description.CreateRequest

// DescriptionCreateForm builds the description-create form with the Store
// field offering the given stores.
func DescriptionCreateForm(list ...Store) (FormDefinition, error) {
	catalog, err := stores.NewCatalog(list...)
	if err != nil {
		return FormDefinition{}, fmt.Errorf("formdef: %w", err)
	}
	return description.NewForm(catalog)
}

// Validate checks values against form using the default validator.
func Validate(ctx context.Context, form FormDefinition, values map[string]string) (Result, error) {
	return validation.Validate(ctx, form, values)
}

// CreateDescription validates values against the description-create form and
// returns the request payload. When the values are rejected the Result is
// returned together with a nil request so callers can surface the errors.
func CreateDescription(ctx context.Context, form FormDefinition, values map[string]string) (*CreateRequest, Result, error) {
	result, err := Validate(ctx, form, values)
	if err != nil {
		return nil, Result{}, err
	}
	if !result.Valid {
		return nil, result, nil
	}
	req, err := description.NewCreateRequest(result, values)
	if err != nil {
		return nil, result, err
	}
	return &req, result, nil
}
