package validate

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartinm/inspire-dojson/internal/cmd/input"
	"github.com/jmartinm/inspire-dojson/schema"
)

const FlagSchema = "schema"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate --schema {schema} {file...}",
		Short: "Validate records against a JSON schema",
		Long: `Validate one or more records against a JSON schema.

The schema file may be JSON or YAML. Every record is checked; validation
failures are reported verbatim from the schema engine and make the command
exit non-zero after all records have been checked.`,
		Args:              cobra.MinimumNArgs(1),
		RunE:              run,
		DisableAutoGenTag: true,
	}

	cmd.Flags().String(FlagSchema, "", "path to the JSON schema to validate against")
	_ = cmd.MarkFlagRequired(FlagSchema)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	schemaPath, err := cmd.Flags().GetString(FlagSchema)
	if err != nil {
		return fmt.Errorf("getting schema flag failed: %w", err)
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema failed: %w", err)
	}
	validator := schema.New(data)

	var failures int
	for _, path := range args {
		rec, err := input.ReadRecord(path)
		if err != nil {
			return err
		}
		if err := validator.Validate(rec); err != nil {
			failures++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
			continue
		}
		slog.Debug("record is valid", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", path)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d records failed validation", failures, len(args))
	}
	return nil
}
