package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/jmartinm/inspire-dojson/internal/cmd/input"
	"github.com/jmartinm/inspire-dojson/internal/flags/enum"
	"github.com/jmartinm/inspire-dojson/record"
)

const FlagOutput = "output"

// Summary describes one field tag of a record.
type Summary struct {
	Tag         string `json:"tag"`
	Kind        string `json:"kind"`
	Occurrences int    `json:"occurrences"`
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields {file}",
		Short: "Summarize the field tags of a record",
		Long: `Summarize the field tags of a record: the value kind stored under each
tag and the number of occurrences (elements for repeated fields, one
otherwise), sorted by tag.`,
		Args:              cobra.ExactArgs(1),
		RunE:              run,
		DisableAutoGenTag: true,
	}

	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{"table", "json", "yaml"}, "output format of the field summary")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return fmt.Errorf("getting output flag failed: %w", err)
	}
	rec, err := input.ReadRecord(args[0])
	if err != nil {
		return err
	}
	if rec.Kind() != record.Mapping {
		return fmt.Errorf("record %q is not a mapping but %s", args[0], rec.Kind())
	}

	summaries := summarize(rec)
	data, err := encode(output, summaries)
	if err != nil {
		return fmt.Errorf("encoding field summary as %q failed: %w", output, err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing field summary failed: %w", err)
	}
	return nil
}

func summarize(rec record.Value) []Summary {
	summaries := make([]Summary, 0, rec.Len())
	for _, p := range rec.Pairs() {
		occurrences := 1
		if p.Value.Kind() == record.Sequence || p.Value.Kind() == record.Set {
			occurrences = p.Value.Len()
		}
		summaries = append(summaries, Summary{
			Tag:         p.Key,
			Kind:        p.Value.Kind().String(),
			Occurrences: occurrences,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Tag < summaries[j].Tag
	})
	return summaries
}

func encode(output string, summaries []Summary) ([]byte, error) {
	switch output {
	case "json":
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		if err := encoder.Encode(summaries); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "yaml":
		return yaml.Marshal(summaries)
	case "table":
		var buf bytes.Buffer
		t := table.NewWriter()
		t.SetOutputMirror(&buf)
		t.AppendHeader(table.Row{"Tag", "Kind", "Occurrences"})
		for _, s := range summaries {
			t.AppendRow(table.Row{s.Tag, s.Kind, s.Occurrences})
		}
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", output)
	}
}
