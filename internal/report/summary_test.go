package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
	"github.com/Sumatoshi-tech/diffdrift/internal/report"
)

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer

	report.RenderSummary(&buf, []mine.SummaryRow{
		{Category: classify.Source, Match: 10, Differ: 3},
		{Category: classify.Test, Match: 5, Differ: 0},
	})

	out := buf.String()
	assert.Contains(t, out, "source")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "TOTAL")
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer

	report.RenderSummary(&buf, nil)

	assert.NotEmpty(t, buf.String())
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer

	err := report.WriteSummaryYAML(&buf, []mine.SummaryRow{
		{Category: classify.License, Match: 2, Differ: 1},
	})
	require.NoError(t, err)

	var decoded []map[string]any

	err = yaml.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "license", decoded[0]["file_type"])
	assert.Equal(t, 2, decoded[0]["no"])
	assert.Equal(t, 1, decoded[0]["yes"])
}
