package mine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want mine.Verdict
	}{
		{"identical", "diff --git a b\n", "diff --git a b\n", mine.VerdictMatch},
		{"both empty", "", "", mine.VerdictMatch},
		{"single byte", "a", "b", mine.VerdictDiffer},
		{"whitespace is significant here", "a \n", "a\n", mine.VerdictDiffer},
		{"error text vs diff text", "fatal: bad revision\n", "diff --git a b\n", mine.VerdictDiffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mine.Compare(tt.a, tt.b))
			// Symmetry.
			assert.Equal(t, mine.Compare(tt.a, tt.b), mine.Compare(tt.b, tt.a))
		})
	}
}

func TestSummarizeEmptyDataset(t *testing.T) {
	ds := mine.Collect(nil)

	assert.Empty(t, ds.Summarize())
}

func TestSummarizeCountsAndZeroFill(t *testing.T) {
	ds := mine.Collect([]mine.Record{
		{Category: classify.Source, Discrepancy: mine.VerdictDiffer},
		{Category: classify.Source, Discrepancy: mine.VerdictMatch},
		{Category: classify.Source, Discrepancy: mine.VerdictDiffer},
		{Category: classify.Readme, Discrepancy: mine.VerdictMatch},
	})

	rows := ds.Summarize()

	assert.Equal(t, []mine.SummaryRow{
		{Category: classify.Source, Match: 1, Differ: 2},
		{Category: classify.Readme, Match: 1, Differ: 0},
	}, rows)
}

func TestSummarizeIsRecomputable(t *testing.T) {
	ds := mine.Collect([]mine.Record{
		{Category: classify.Test, Discrepancy: mine.VerdictDiffer},
	})

	assert.Equal(t, ds.Summarize(), ds.Summarize())
}
