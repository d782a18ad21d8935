// Package report writes the run's artifacts: the dataset CSV, the derived
// summary table (CSV, console, yaml) and optional bar charts.
package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
)

// datasetHeader is the dataset column order.
var datasetHeader = []string{
	"repo",
	"old_file_path",
	"new_file_path",
	"commit_sha",
	"parent_commit_sha",
	"commit_message",
	"file_type",
	"diff_myers",
	"diff_histogram",
	"discrepancy",
}

// summaryHeader is the summary column order: one column per verdict.
var summaryHeader = []string{"file_type", "No", "Yes"}

// WriteDataset writes the dataset to path as UTF-8 CSV with a header row.
// The file is written to a temporary sibling and renamed into place, so a
// crashed run never leaves a partial file under the final name.
func WriteDataset(path string, ds mine.Dataset) error {
	rows := make([][]string, 0, len(ds.Records))

	for _, r := range ds.Records {
		rows = append(rows, []string{
			r.Repo,
			r.OldPath,
			r.NewPath,
			r.CommitSHA,
			r.ParentSHA,
			r.Message,
			string(r.Category),
			r.DiffMyers,
			r.DiffHistogram,
			string(r.Discrepancy),
		})
	}

	err := writeCSV(path, datasetHeader, rows)
	if err != nil {
		return err
	}

	log.Printf("report: dataset written: %s (%d rows)", path, len(ds.Records))

	return nil
}

// SummaryPath derives the summary file name next to the dataset:
// diff_dataset.csv becomes diff_dataset_stats.csv.
func SummaryPath(datasetPath string) string {
	ext := filepath.Ext(datasetPath)

	return strings.TrimSuffix(datasetPath, ext) + "_stats" + ext
}

// WriteSummary writes the (category, verdict) counts to path as CSV.
func WriteSummary(path string, rows []mine.SummaryRow) error {
	csvRows := make([][]string, 0, len(rows))

	for _, row := range rows {
		csvRows = append(csvRows, []string{
			string(row.Category),
			strconv.Itoa(row.Match),
			strconv.Itoa(row.Differ),
		})
	}

	return writeCSV(path, summaryHeader, csvRows)
}

// writeCSV writes header+rows atomically via a temp file in path's dir.
func writeCSV(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	writeErr := func() error {
		w := csv.NewWriter(tmp)

		err := w.Write(header)
		if err != nil {
			return fmt.Errorf("write header: %w", err)
		}

		err = w.WriteAll(rows)
		if err != nil {
			return fmt.Errorf("write rows: %w", err)
		}

		return nil
	}()

	closeErr := tmp.Close()

	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)

		if writeErr != nil {
			return writeErr
		}

		return fmt.Errorf("close temp file: %w", closeErr)
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("rename into place: %w", err)
	}

	return nil
}
