// Package mine implements the per-commit, per-file diff-comparison
// pipeline: it walks a repository's history, classifies each touched file,
// invokes the diff engine once per algorithm and records whether the two
// outputs agree.
package mine

import (
	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
)

// Verdict says whether two diff texts differ.
type Verdict string

const (
	// VerdictMatch means the two texts are byte-identical.
	VerdictMatch Verdict = "No"
	// VerdictDiffer means the two texts differ in at least one byte.
	VerdictDiffer Verdict = "Yes"
)

// Compare judges two diff texts by pure byte equality. No normalization
// happens here; whitespace and blank-line handling is applied upstream at
// diff-generation time.
func Compare(a, b string) Verdict {
	if a == b {
		return VerdictMatch
	}

	return VerdictDiffer
}

// Record is one (commit, modified file) comparison. Immutable once created.
type Record struct {
	Repo          string
	OldPath       string
	NewPath       string
	CommitSHA     string
	ParentSHA     string
	Message       string
	Category      classify.Category
	DiffMyers     string
	DiffHistogram string
	Discrepancy   Verdict
}

// Dataset is the run's ordered record sequence. Per-repository sequences
// are concatenated in input order; nothing is deduplicated or joined.
type Dataset struct {
	Records []Record
}

// Collect assembles records into a Dataset.
func Collect(records []Record) Dataset {
	return Dataset{Records: records}
}

// SummaryRow is the per-category verdict tally.
type SummaryRow struct {
	Category classify.Category
	Match    int // verdict "No"
	Differ   int // verdict "Yes"
}

// Summarize derives the (category, verdict) counts from the record
// sequence. Purely derived and recomputable at any time; an empty dataset
// yields zero rows. Rows follow the fixed category order and only cover
// categories present in the data, with absent verdicts counted as zero.
func (d Dataset) Summarize() []SummaryRow {
	match := map[classify.Category]int{}
	differ := map[classify.Category]int{}
	seen := map[classify.Category]bool{}

	for _, rec := range d.Records {
		seen[rec.Category] = true

		if rec.Discrepancy == VerdictDiffer {
			differ[rec.Category]++
		} else {
			match[rec.Category]++
		}
	}

	rows := make([]SummaryRow, 0, len(seen))

	for _, category := range classify.Categories() {
		if !seen[category] {
			continue
		}

		rows = append(rows, SummaryRow{
			Category: category,
			Match:    match[category],
			Differ:   differ[category],
		})
	}

	return rows
}
