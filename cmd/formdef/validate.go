package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdef/pkg/forms/description"
	"github.com/goliatone/go-formdef/pkg/openapi"
	"github.com/goliatone/go-formdef/pkg/validation"
)

var errInvalidValues = errors.New("values are invalid")

type validateOutput struct {
	validation.Result
	Schema  []openapi.Issue            `json:"schemaIssues,omitempty"`
	Request *description.CreateRequest `json:"request,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		pairs      []string
		valuesFile string
		withSchema bool
		request    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check values against the form rules",
		Long: `Check values against the form rules. Values come from a JSON or YAML object
(--values) and/or repeated --set name=value flags; flags win on conflicts.
Exits with status 1 when any field is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := collectValues(valuesFile, pairs)
			if err != nil {
				return err
			}

			v, err := validation.Default()
			if err != nil {
				return err
			}
			result, err := v.Validate(cmd.Context(), a.form, values)
			if err != nil {
				return err
			}
			out := validateOutput{Result: result}

			if withSchema {
				schema, err := openapi.RequestSchema(cmd.Context(), a.form)
				if err != nil {
					return err
				}
				out.Schema = openapi.ValidateValues(schema, values)
			}
			if request && result.Valid {
				req, err := description.NewCreateRequest(result, values)
				if err != nil {
					return err
				}
				out.Request = &req
			}

			if err := write(cmd.OutOrStdout(), a.format, out); err != nil {
				return err
			}

			if !result.Valid {
				a.logger.Info().Int("errors", len(result.Errors)).Msg("values rejected")
				return errInvalidValues
			}
			a.logger.Info().Msg("values accepted")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&pairs, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringVar(&valuesFile, "values", "", "JSON or YAML file holding field values")
	cmd.Flags().BoolVar(&withSchema, "schema", false, "also check values against the exported OpenAPI schema")
	cmd.Flags().BoolVar(&request, "request", false, "print the create request payload when values are valid")
	return cmd
}

func collectValues(path string, pairs []string) (map[string]string, error) {
	values := make(map[string]string)
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		if err := yaml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("parse values %s: %w", path, err)
		}
	}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}
