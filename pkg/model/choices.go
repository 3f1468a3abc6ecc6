package model

import (
	"context"
	"slices"
)

// Choice is one selectable option of a ChoiceField.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ChoiceSource supplies the options of a ChoiceField. Implementations are
// owned by the caller (a store catalogue, a database query, a static list).
type ChoiceSource interface {
	Choices(ctx context.Context) ([]Choice, error)
}

// ChoiceSourceFunc adapts a function into a ChoiceSource.
type ChoiceSourceFunc func(ctx context.Context) ([]Choice, error)

// Choices calls the underlying function.
func (fn ChoiceSourceFunc) Choices(ctx context.Context) ([]Choice, error) {
	return fn(ctx)
}

// StaticChoices is a fixed choice list.
type StaticChoices []Choice

// Choices returns a copy of the list.
func (s StaticChoices) Choices(context.Context) ([]Choice, error) {
	return slices.Clone([]Choice(s)), nil
}

// ChoiceValues extracts the submitted values of the given choices.
func ChoiceValues(choices []Choice) []string {
	if len(choices) == 0 {
		return nil
	}
	out := make([]string, 0, len(choices))
	for _, choice := range choices {
		out = append(out, choice.Value)
	}
	return out
}
