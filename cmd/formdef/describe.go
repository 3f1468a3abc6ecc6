package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdef/pkg/model"
)

func newDescribeCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the form definition with resolved store choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var decorators []model.Decorator
			if plain {
				decorators = append(decorators, model.PlainLabels())
			}
			desc, err := a.form.Describe(cmd.Context(), decorators...)
			if err != nil {
				return err
			}
			a.logger.Debug().Int("fields", len(desc.Fields)).Msg("described form")
			return write(cmd.OutOrStdout(), a.format, desc)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain-labels", false, "replace label markup with plain text")
	return cmd
}
