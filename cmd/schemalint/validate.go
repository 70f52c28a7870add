package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	schemacore "github.com/flowcore/schemacore"
	"github.com/flowcore/schemacore/log"
)

// validateConfig is the validate subcommand's pflag-backed option set,
// grounded on MacroPower-x's Config/RegisterFlags pairing.
type validateConfig struct {
	schemaPath   string
	schemaFormat string
	docPath      string
	docFormat    string
	locale       string
	quiet        bool
}

func (c *validateConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.schemaPath, "schema", "", "schema file to validate against (- or empty for stdin)")
	fs.StringVar(&c.schemaFormat, "schema-format", "json", "schema encoding: json or yaml")
	fs.StringVar(&c.docPath, "document", "", "instance document to validate (- or empty for stdin)")
	fs.StringVar(&c.docFormat, "document-format", "json", "document encoding: json or yaml")
	fs.StringVar(&c.locale, "locale", "en", "outcome message locale (en, zh-Hans)")
	fs.BoolVar(&c.quiet, "quiet", false, "suppress per-outcome output, exit status only")
}

func newValidateCmd(logger *log.Logger) *cobra.Command {
	cfg := &validateConfig{}
	logger = logger.With("validate")

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a document against a schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(cfg, logger)
		},
	}
	cfg.RegisterFlags(cmd.Flags())
	return cmd
}

func runValidate(cfg *validateConfig, logger *log.Logger) error {
	schema, err := loadSchema(cfg.schemaPath, cfg.schemaFormat)
	if err != nil {
		return err
	}
	doc, err := loadDocument(cfg.docPath, cfg.docFormat)
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
	schemaURI := rootSchemaURI(index, schema, defaultBaseURI)

	bundle, err := schemacore.NewMessageBundle()
	if err != nil {
		return fmt.Errorf("load outcome messages: %w", err)
	}
	localizer := bundle.NewLocalizer(cfg.locale)

	validator := schemacore.NewValidator(index, schemacore.KeepAll)
	outcomes, err := validator.Validate(schemaURI, doc)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if len(outcomes) == 0 {
		if !cfg.quiet {
			logger.Infof("document is valid")
		}
		return nil
	}

	if !cfg.quiet {
		for _, outcome := range outcomes {
			fmt.Printf("%s: %s\n", outcome.Outcome.Kind, outcome.Localize(localizer))
		}
	}
	return fmt.Errorf("document failed validation with %d outcome(s)", len(outcomes))
}
