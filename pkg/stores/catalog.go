// Package stores holds the list of stores a description can be published
// to. A Catalog is the choice source behind the form's Store field.
package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-formdef/pkg/model"
)

var (
	ErrEmptyStoreName = errors.New("stores: store name is required")
	ErrDuplicateStore = errors.New("stores: duplicate store name")
)

// Store identifies a store. Name is the submitted value; DisplayName is what
// users see.
type Store struct {
	Name        string `yaml:"name" json:"name"`
	DisplayName string `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Label returns the display name, falling back to the name.
func (s Store) Label() string {
	if label := strings.TrimSpace(s.DisplayName); label != "" {
		return label
	}
	return s.Name
}

// Catalog is an ordered, immutable store list.
type Catalog struct {
	stores []Store
}

// NewCatalog validates names (non-empty, unique) and keeps the given order.
func NewCatalog(list ...Store) (*Catalog, error) {
	cleaned := make([]Store, 0, len(list))
	for idx, store := range list {
		store.Name = strings.TrimSpace(store.Name)
		if store.Name == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrEmptyStoreName, idx)
		}
		cleaned = append(cleaned, store)
	}

	names := lo.Map(cleaned, func(store Store, _ int) string { return store.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateStore, strings.Join(dups, ", "))
	}

	return &Catalog{stores: cleaned}, nil
}

// Stores returns a copy of the list.
func (c *Catalog) Stores() []Store {
	if c == nil {
		return nil
	}
	return slices.Clone(c.stores)
}

// Lookup finds a store by name.
func (c *Catalog) Lookup(name string) (Store, bool) {
	if c == nil {
		return Store{}, false
	}
	return lo.Find(c.stores, func(store Store) bool { return store.Name == name })
}

// Choices implements model.ChoiceSource.
func (c *Catalog) Choices(ctx context.Context) ([]model.Choice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return lo.Map(c.stores, func(store Store, _ int) model.Choice {
		return model.Choice{Value: store.Name, Label: store.Label()}
	}), nil
}

var _ model.ChoiceSource = (*Catalog)(nil)
