// Command formdef inspects and exercises the marketplace's description form:
// it prints the form descriptor, checks values against the form rules and
// exports the matching OpenAPI schema.
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidValues) {
			log.Error().Err(err).Msg("formdef failed")
		}
		os.Exit(1)
	}
}
