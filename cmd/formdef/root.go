package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdef/internal/config"
	"github.com/goliatone/go-formdef/pkg/forms/description"
	"github.com/goliatone/go-formdef/pkg/model"
	"github.com/goliatone/go-formdef/pkg/stores"
)

const defaultConfigFile = "formdef.yaml"

// app carries state shared by subcommands once the root pre-run completes.
type app struct {
	cfgFile  string
	logLevel string
	format   string

	cfg     *config.Config
	logger  zerolog.Logger
	catalog *stores.Catalog
	form    model.FormDefinition
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "formdef",
		Short: "Inspect and check the description-create form",
		Long: `formdef prints the description-create form definition, validates values
against its field rules and exports the equivalent OpenAPI request schema.
The Store field's choices come from the configured store list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"config file path (default: ./"+defaultConfigFile+" when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", formatJSON,
		"output format (json, yaml)")

	root.AddCommand(newDescribeCmd(a), newValidateCmd(a), newSchemaCmd(a))
	return root
}

func (a *app) setup(stderr io.Writer) error {
	if err := checkFormat(a.format); err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	a.logger = newLogger(a.cfg.Logging, stderr)
	log.Logger = a.logger

	catalog, err := a.cfg.Catalog()
	if err != nil {
		return fmt.Errorf("load stores: %w", err)
	}
	a.catalog = catalog

	form, err := description.NewForm(catalog)
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	a.form = form

	a.logger.Debug().
		Str("form", form.ID()).
		Int("stores", len(catalog.Stores())).
		Msg("form ready")
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return config.Default(), nil
			}
			return nil, err
		}
		path = defaultConfigFile
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()
}
