package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
)

const (
	chartWidth  = "900px"
	chartHeight = "500px"
)

// plotCategories are the categories that get a dedicated chart.
var plotCategories = []classify.Category{
	classify.Source, classify.Test, classify.Readme, classify.License,
}

// WriteCharts renders mismatch bar charts into dir: one chart across all
// categories plus one per plotted category. Charts are a rendering of the
// summary table only.
func WriteCharts(dir string, rows []mine.SummaryRow) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create plots dir: %w", err)
	}

	differ := map[classify.Category]int{}
	for _, row := range rows {
		differ[row.Category] = row.Differ
	}

	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))

	for _, row := range rows {
		labels = append(labels, string(row.Category))
		data = append(data, opts.BarData{Value: row.Differ})
	}

	err = renderBar(filepath.Join(dir, "mismatches_by_type.html"), "Mismatches by file type", labels, data)
	if err != nil {
		return err
	}

	for _, category := range plotCategories {
		name := fmt.Sprintf("mismatches_%s.html", category)
		title := fmt.Sprintf("Mismatches for %s", category)

		err = renderBar(
			filepath.Join(dir, name), title,
			[]string{string(category)},
			[]opts.BarData{{Value: differ[category]}},
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func renderBar(path, title string, labels []string, data []opts.BarData) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight, PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("mismatches", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	renderErr := bar.Render(f)
	closeErr := f.Close()

	if renderErr != nil {
		return fmt.Errorf("render chart: %w", renderErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close chart file: %w", closeErr)
	}

	return nil
}
