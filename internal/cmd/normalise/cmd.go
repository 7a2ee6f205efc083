package normalise

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"github.com/jmartinm/inspire-dojson/internal/cmd/input"
	"github.com/jmartinm/inspire-dojson/internal/flags/enum"
	"github.com/jmartinm/inspire-dojson/normalise"
	"github.com/jmartinm/inspire-dojson/record"
)

const (
	FlagOutput           = "output"
	FlagSteps            = "steps"
	FlagConcurrencyLimit = "concurrency-limit"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalise {file...}",
		Aliases: []string{"normalize", "clean"},
		Short:   "Strip empty values from and deduplicate the lists of converted records",
		Long: fmt.Sprintf(`Normalise the structure of one or more converted records.

Each input file holds a single record as JSON (or YAML, by extension). The
selected steps run in order over every record; available steps are {%s}.
Cleaned records are written to standard output in input order.`,
			strings.Join(normalise.Registry.Names(), "|")),
		Args:              cobra.MinimumNArgs(1),
		RunE:              run,
		DisableAutoGenTag: true,
	}

	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{"json", "yaml"}, "output format of the cleaned records")
	cmd.Flags().StringSlice(FlagSteps, []string{normalise.StepStripEmpty, normalise.StepDedupeLists},
		"normalisation steps to apply, in order")
	cmd.Flags().Int(FlagConcurrencyLimit, 4, "maximum amount of records processed in parallel")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return fmt.Errorf("getting output flag failed: %w", err)
	}
	steps, err := cmd.Flags().GetStringSlice(FlagSteps)
	if err != nil {
		return fmt.Errorf("getting steps flag failed: %w", err)
	}
	limit, err := cmd.Flags().GetInt(FlagConcurrencyLimit)
	if err != nil {
		return fmt.Errorf("getting concurrency-limit flag failed: %w", err)
	}

	results := make([][]byte, len(args))
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
			slog.Debug("normalised record", "path", path, "steps", steps)
			results[i], err = encode(output, cleaned)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, data := range results {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("writing cleaned record failed: %w", err)
		}
	}
	return nil
}

func encode(output string, v record.Value) ([]byte, error) {
	switch output {
	case "yaml":
		return yaml.Marshal(v)
	case "json":
		data, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding cleaned record failed: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", output)
	}
}
