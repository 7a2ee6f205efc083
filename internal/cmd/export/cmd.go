package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmartinm/inspire-dojson/internal/cmd/input"
	"github.com/jmartinm/inspire-dojson/marcxml"
	"github.com/jmartinm/inspire-dojson/normalise"
)

const (
	FlagOutputDir        = "output-dir"
	FlagSteps            = "steps"
	FlagConcurrencyLimit = "concurrency-limit"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export {file...}",
		Aliases: []string{"marcxml"},
		Short:   "Serialize records into the legacy MARC-XML format",
		Long: `Serialize one or more records into the legacy MARC-XML text format.

Records are normalised before export; pass --steps to change or disable the
applied steps. Without --output-dir the XML documents are written to standard
output in input order, otherwise one .xml file per input record is created.`,
		Args:              cobra.MinimumNArgs(1),
		RunE:              run,
		DisableAutoGenTag: true,
	}

	cmd.Flags().String(FlagOutputDir, "", "directory to write one .xml file per record into")
	cmd.Flags().StringSlice(FlagSteps, []string{normalise.StepStripEmpty, normalise.StepDedupeLists},
		"normalisation steps to apply before export, in order")
	cmd.Flags().Int(FlagConcurrencyLimit, 4, "maximum amount of records processed in parallel")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	outputDir, err := cmd.Flags().GetString(FlagOutputDir)
	if err != nil {
		return fmt.Errorf("getting output-dir flag failed: %w", err)
	}
	steps, err := cmd.Flags().GetStringSlice(FlagSteps)
	if err != nil {
		return fmt.Errorf("getting steps flag failed: %w", err)
	}
	limit, err := cmd.Flags().GetInt(FlagConcurrencyLimit)
	if err != nil {
		return fmt.Errorf("getting concurrency-limit flag failed: %w", err)
	}

	results := make([]string, len(args))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			rec, err := input.ReadRecord(path)
			if err != nil {
				return err
			}
			cleaned, err := normalise.Apply(rec, steps...)
			if err != nil {
				return fmt.Errorf("normalising record %q failed: %w", path, err)
			}
			results[i] = marcxml.Export(cleaned)
			slog.Debug("exported record", "path", path, "bytes", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if outputDir == "" {
		for _, doc := range results {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), doc); err != nil {
				return fmt.Errorf("writing MARC-XML failed: %w", err)
			}
		}
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory failed: %w", err)
	}
	for i, doc := range results {
		base := filepath.Base(args[i])
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
		target := filepath.Join(outputDir, name)
		if err := os.WriteFile(target, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing %q failed: %w", target, err)
		}
	}
	return nil
}
