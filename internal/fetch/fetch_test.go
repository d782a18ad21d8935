package fetch_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diffdrift/internal/fetch"
	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

func requireGit(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git binary not available")
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widgets.git", "widgets"},
		{"https://github.com/acme/widgets", "widgets"},
		{"https://github.com/acme/widgets/", "widgets"},
		{"git@github.com:acme/widgets.git", "widgets"},
		{"/srv/repos/widgets", "widgets"},
		{"widgets", "widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, fetch.RepoName(tt.url))
		})
	}
}

func TestEnsureRejectsNonRepositoryDir(t *testing.T) {
	workdir := t.TempDir()

	err := os.MkdirAll(filepath.Join(workdir, "widgets"), 0o755)
	require.NoError(t, err)

	_, ensureErr := fetch.Ensure(context.Background(), "https://example.com/widgets", workdir)

	require.Error(t, ensureErr)
	assert.True(t, errors.Is(ensureErr, fetch.ErrNotRepository))
}

func TestEnsureExistingCheckout(t *testing.T) {
	requireGit(t)

	workdir := t.TempDir()
	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("a.txt", "x\n")
	tr.Commit("initial")

	// Move the checkout under the workdir with the derived name.
	target := filepath.Join(workdir, "widgets")
	require.NoError(t, os.Rename(tr.Path, target))

	spec, err := fetch.Ensure(context.Background(), "https://example.com/widgets", workdir)

	require.NoError(t, err)
	assert.Equal(t, "widgets", spec.Name)
	assert.Equal(t, target, spec.Path)
}

func TestEnsureClonesLocalSource(t *testing.T) {
	requireGit(t)

	src := gitlib.NewTestRepo(t)
	src.WriteFile("a.txt", "x\n")
	src.Commit("initial")

	workdir := t.TempDir()

	spec, err := fetch.Ensure(context.Background(), src.Path, workdir)

	require.NoError(t, err)
	assert.DirExists(t, spec.Path)

	repo, openErr := gitlib.OpenRepository(spec.Path)
	require.NoError(t, openErr)
	repo.Free()
}

func TestEnsureCloneFailure(t *testing.T) {
	requireGit(t)

	workdir := t.TempDir()

	_, err := fetch.Ensure(context.Background(), filepath.Join(workdir, "does-not-exist"), workdir)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fetch.ErrCloneFailed))
}
