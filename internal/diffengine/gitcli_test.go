package diffengine_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diffdrift/internal/diffengine"
	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

func requireGit(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath(diffengine.DefaultBinary)
	if err != nil {
		t.Skip("git binary not available")
	}
}

func TestGitCLIDiffDeterminism(t *testing.T) {
	requireGit(t)

	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("main.py", "print('one')\n")
	first := tr.Commit("first")
	tr.WriteFile("main.py", "print('one')\nprint('two')\n")
	second := tr.Commit("second")

	engine := diffengine.NewGitCLI("", 0)
	ctx := context.Background()

	a := engine.Diff(ctx, tr.Path, first.String(), second.String(), []string{"main.py"}, diffengine.Myers)
	b := engine.Diff(ctx, tr.Path, first.String(), second.String(), []string{"main.py"}, diffengine.Myers)

	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestGitCLIDiffAgainstEmptyTree(t *testing.T) {
	requireGit(t)

	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("main.py", "print('hi')\n")
	root := tr.Commit("initial")

	engine := diffengine.NewGitCLI("", 0)

	text := engine.Diff(context.Background(), tr.Path, gitlib.EmptyTreeID, root.String(), []string{"main.py"}, diffengine.Histogram)

	require.NotEmpty(t, text)
	assert.Contains(t, text, "new file")
}

func TestGitCLIDiffIgnoresWhitespaceOnlyChanges(t *testing.T) {
	requireGit(t)

	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("main.py", "def foo():\n    return 1\n")
	first := tr.Commit("first")
	tr.WriteFile("main.py", "def foo():\n\treturn 1\n")
	second := tr.Commit("reformat")

	engine := diffengine.NewGitCLI("", 0)
	ctx := context.Background()

	myers := engine.Diff(ctx, tr.Path, first.String(), second.String(), []string{"main.py"}, diffengine.Myers)
	histogram := engine.Diff(ctx, tr.Path, first.String(), second.String(), []string{"main.py"}, diffengine.Histogram)

	assert.Empty(t, myers)
	assert.Equal(t, myers, histogram)
}

func TestGitCLIDiffBadRevisionReturnsDiagnosticText(t *testing.T) {
	requireGit(t)

	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("main.py", "print('hi')\n")
	root := tr.Commit("initial")

	engine := diffengine.NewGitCLI("", 0)

	text := engine.Diff(context.Background(), tr.Path, "definitely-not-a-rev", root.String(), []string{"main.py"}, diffengine.Myers)

	// Failure text stands in for diff text; it must be non-empty so the
	// comparison still has something to chew on.
	assert.NotEmpty(t, text)
}

func TestGitCLIDiffMissingBinary(t *testing.T) {
	tr := t.TempDir()

	engine := diffengine.NewGitCLI("/nonexistent/git-binary", 0)

	text := engine.Diff(context.Background(), tr, "a", "b", []string{"x"}, diffengine.Myers)

	assert.NotEmpty(t, text)
}
