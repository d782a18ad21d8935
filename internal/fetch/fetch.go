// Package fetch acquires repository checkouts for analysis. It is the
// collaborator in front of the core pipeline: a failed acquisition is a
// hard error, never a silent empty dataset.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sentinel acquisition errors.
var (
	ErrCloneFailed   = errors.New("git clone failed")
	ErrNotRepository = errors.New("not a git repository")
)

// RepoSpec identifies one acquired repository.
type RepoSpec struct {
	URL  string
	Name string
	Path string
}

// RepoName derives a checkout directory name from a clone URL or path:
// the last segment with any .git suffix removed.
func RepoName(url string) string {
	trimmed := strings.TrimRight(url, "/")

	base := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		base = trimmed[idx+1:]
	}

	return strings.TrimSuffix(base, ".git")
}

// Ensure makes sure a fully-fetched checkout of url exists under workdir
// and returns its spec. A fresh checkout is cloned shallow and unshallowed;
// an existing one gets its origin re-pointed and refreshed. A directory
// that exists but is not a repository is an error.
func Ensure(ctx context.Context, url, workdir string) (RepoSpec, error) {
	spec := RepoSpec{
		URL:  url,
		Name: RepoName(url),
		Path: filepath.Join(workdir, RepoName(url)),
	}

	_, statErr := os.Stat(spec.Path)
	if statErr == nil {
		return spec, refresh(ctx, spec)
	}

	if !errors.Is(statErr, os.ErrNotExist) {
		return spec, fmt.Errorf("stat %s: %w", spec.Path, statErr)
	}

	return spec, clone(ctx, spec)
}

func clone(ctx context.Context, spec RepoSpec) error {
	err := os.MkdirAll(filepath.Dir(spec.Path), 0o755)
	if err != nil {
		return fmt.Errorf("create workdir: %w", err)
	}

	log.Printf("fetch: clone %s -> %s", spec.URL, spec.Path)

	err = runGit(ctx, "", "clone", "--no-tags", "--depth", "1", spec.URL, spec.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCloneFailed, spec.URL, err)
	}

	// Best effort: local clones are never shallow and make this a no-op.
	_ = runGit(ctx, spec.Path, "fetch", "--unshallow")

	return nil
}

func refresh(ctx context.Context, spec RepoSpec) error {
	_, err := os.Stat(filepath.Join(spec.Path, ".git"))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotRepository, spec.Path)
	}

	// Best effort: an unreachable remote still leaves a usable checkout
	// for offline analysis.
	_ = runGit(ctx, spec.Path, "remote", "set-url", "origin", spec.URL)
	_ = runGit(ctx, spec.Path, "fetch", "--all")

	return nil
}

// runGit executes git with args in dir, folding stderr into the error.
func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return fmt.Errorf("git %s: %w: %s", args[0], err, diag)
		}

		return fmt.Errorf("git %s: %w", args[0], err)
	}

	return nil
}
