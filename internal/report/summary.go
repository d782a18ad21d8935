package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
)

// RenderSummary writes the (category, verdict) counts as a console table.
func RenderSummary(w io.Writer, rows []mine.SummaryRow) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"file type", "No", "Yes"})

	var totalMatch, totalDiffer int

	for _, row := range rows {
		tbl.AppendRow(table.Row{string(row.Category), row.Match, row.Differ})

		totalMatch += row.Match
		totalDiffer += row.Differ
	}

	tbl.AppendFooter(table.Row{"total", totalMatch, totalDiffer})
	tbl.Render()
}

// summaryEntry is the yaml shape of one summary row.
type summaryEntry struct {
	FileType string `yaml:"file_type"`
	Match    int    `yaml:"no"`
	Differ   int    `yaml:"yes"`
}

// WriteSummaryYAML writes the summary as a yaml document.
func WriteSummaryYAML(w io.Writer, rows []mine.SummaryRow) error {
	entries := make([]summaryEntry, 0, len(rows))

	for _, row := range rows {
		entries = append(entries, summaryEntry{
			FileType: string(row.Category),
			Match:    row.Match,
			Differ:   row.Differ,
		})
	}

	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(entries)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}

	return nil
}
