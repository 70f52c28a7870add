// Command schemalint loads a JSON Schema document and either validates an
// instance document against it or prints the statically inferred Shape.
//
// Grounded on MacroPower-x's cmd/magicschema/main.go: a bare cobra root
// command with SilenceErrors/SilenceUsage set so errors are printed once,
// by main, and pflag-backed per-command flags rather than a single global
// flag set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcore/schemacore/log"
)

func main() {
	logger := log.Default()

	root := &cobra.Command{
		Use:           "schemalint",
		Short:         "Validate documents against a schema and inspect inferred shapes",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newValidateCmd(logger))
	root.AddCommand(newShapeCmd(logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

const defaultBaseURI = "urn:schemalint:root"
