package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	schemacore "github.com/flowcore/schemacore"
	"github.com/flowcore/schemacore/log"
)

// shapeConfig is the shape subcommand's option set. With neither --locate
// nor --inspect nor --locations set, the command prints the full inferred
// Shape as JSON.
type shapeConfig struct {
	schemaPath   string
	schemaFormat string
	locate       string
	inspect      bool
	locations    bool
}

func (c *shapeConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.schemaPath, "schema", "", "schema file to infer a shape from (- or empty for stdin)")
	fs.StringVar(&c.schemaFormat, "schema-format", "json", "schema encoding: json or yaml")
	fs.StringVar(&c.locate, "locate", "", "print only the shape at this JSON pointer")
	fs.BoolVar(&c.inspect, "inspect", false, "print design-time diagnostics instead of the shape")
	fs.BoolVar(&c.locations, "locations", false, "print every reachable (pointer, existence) pair instead of the shape")
}

func newShapeCmd(logger *log.Logger) *cobra.Command {
	cfg := &shapeConfig{}
	logger = logger.With("shape")

	cmd := &cobra.Command{
		Use:   "shape",
		Short: "Infer and print a schema's static Shape",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runShape(cfg, logger)
		},
	}
	cfg.RegisterFlags(cmd.Flags())
	return cmd
}

func runShape(cfg *shapeConfig, logger *log.Logger) error {
	schema, err := loadSchema(cfg.schemaPath, cfg.schemaFormat)
	if err != nil {
		return err
	}

	index := schemacore.NewIndex()
	if err := index.Add(schema, defaultBaseURI); err != nil {
		return fmt.Errorf("index schema: %w", err)
	}
	if err := index.VerifyReferences(); err != nil {
		return fmt.Errorf("verify references: %w", err)
	}

	root := schemacore.Infer(schema, index, rootSchemaURI(index, schema, defaultBaseURI))

	switch {
	case cfg.inspect:
		return printJSON(schemacore.Inspect(root))
	case cfg.locations:
		return printJSON(schemacore.Locations(root))
	case cfg.locate != "":
		shape, existence, ok := schemacore.Locate(root, cfg.locate)
		if !ok {
			return fmt.Errorf("location %q is unreachable", cfg.locate)
		}
		logger.Debugf("existence at %q: %v", cfg.locate, existence)
		return printJSON(schemacore.LocationEntry{Pointer: cfg.locate, Shape: shape, Existence: existence})
	default:
		return printJSON(root)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal shape output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
