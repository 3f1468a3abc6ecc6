package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdef/pkg/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		document bool
		opts     openapi.DocumentOptions
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the form as an OpenAPI request schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !document {
				schema, err := openapi.RequestSchema(ctx, a.form)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), a.format, schema)
			}

			doc, err := openapi.Document(ctx, a.form, opts)
			if err != nil {
				return err
			}
			if err := doc.Validate(ctx); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.format, doc)
		},
	}

	cmd.Flags().BoolVar(&document, "document", false, "wrap the schema in a full OpenAPI document")
	cmd.Flags().StringVar(&opts.Title, "title", "", "document title (defaults to the form id)")
	cmd.Flags().StringVar(&opts.Version, "api-version", "", "document version (defaults to 1.0.0)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "operation path (defaults to /<form id>)")
	cmd.Flags().StringVar(&opts.OperationID, "operation-id", "", "operation id (defaults to the form id)")
	return cmd
}
