package mine_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
	"github.com/Sumatoshi-tech/diffdrift/internal/diffengine"
	"github.com/Sumatoshi-tech/diffdrift/internal/mine"
	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

func requireGit(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath(diffengine.DefaultBinary)
	if err != nil {
		t.Skip("git binary not available")
	}
}

func TestAnalyzeRepoOpenFailure(t *testing.T) {
	engine := &stubEngine{byAlgorithm: map[diffengine.Algorithm]string{}}

	_, err := mine.AnalyzeRepo(context.Background(), "nope", "/nonexistent/repo", engine, mine.WalkOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/repo")
}

func TestAnalyzeRepoWithStubEngine(t *testing.T) {
	tr, _ := linearRepo(t)

	engine := &stubEngine{byAlgorithm: map[diffengine.Algorithm]string{
		diffengine.Myers:     "same\n",
		diffengine.Histogram: "same\n",
	}}

	records, err := mine.AnalyzeRepo(context.Background(), "linear", tr.Path, engine, mine.WalkOptions{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, record := range records {
		assert.Equal(t, "linear", record.Repo)
		assert.Equal(t, classify.Source, record.Category)
		assert.Equal(t, mine.VerdictMatch, record.Discrepancy)
	}
}

// The canonical scenario: a rename plus a whitespace-only reformat must
// yield a single source record on which both algorithms agree, since
// whitespace is ignored at diff-generation time.
func TestAnalyzeRepoWhitespaceOnlyRename(t *testing.T) {
	requireGit(t)

	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("a.py", "def foo():\n    x = 1\n    y = 2\n    return x + y\n")
	tr.Commit("add a.py")

	tr.RemoveFile("a.py")
	tr.WriteFile("b.py", "def foo():\n\tx = 1\n\ty = 2\n\treturn x + y\n")
	tr.Commit("rename and reformat")

	engine := diffengine.NewGitCLI("", 0)

	records, err := mine.AnalyzeRepo(context.Background(), "rename", tr.Path, engine, mine.WalkOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	renamed := records[1]
	assert.Equal(t, "a.py", renamed.OldPath)
	assert.Equal(t, "b.py", renamed.NewPath)
	assert.Equal(t, classify.Source, renamed.Category)
	assert.Equal(t, mine.VerdictMatch, renamed.Discrepancy)
}
