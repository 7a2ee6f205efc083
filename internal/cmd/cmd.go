// Package cmd assembles the dojson command tree.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartinm/inspire-dojson/internal/cmd/export"
	"github.com/jmartinm/inspire-dojson/internal/cmd/fields"
	"github.com/jmartinm/inspire-dojson/internal/cmd/normalise"
	"github.com/jmartinm/inspire-dojson/internal/cmd/validate"
	"github.com/jmartinm/inspire-dojson/internal/flags/log"
)

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dojson [sub-command]",
		Short: "Normalise, validate and export converted bibliographic records",
		Long: `dojson works with records produced by the MARC conversion pipeline:
it normalises their structure, validates them against a JSON schema and
serializes them back into the legacy MARC-XML format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: setupLogging,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	log.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(normalise.New())
	cmd.AddCommand(export.New())
	cmd.AddCommand(validate.New())
	cmd.AddCommand(fields.New())
	return cmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger, err := log.Logger(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
