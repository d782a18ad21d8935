package diffengine

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultBinary is the git executable used when none is configured.
const DefaultBinary = "git"

// GitCLI shells out to the git binary. Whitespace-only and blank-line-only
// changes are ignored at diff-generation time and rename detection is
// enabled, matching the dataset's diff contract.
type GitCLI struct {
	// Binary is the git executable; DefaultBinary when empty.
	Binary string
	// Timeout caps a single invocation. Zero means no timeout, in which
	// case a hung git process hangs the run.
	Timeout time.Duration
}

// NewGitCLI returns a git CLI engine.
func NewGitCLI(binary string, timeout time.Duration) *GitCLI {
	return &GitCLI{Binary: binary, Timeout: timeout}
}

// Diff runs git diff between oldRev and newRev restricted to paths. Exit 0
// yields stdout; any failure (non-zero exit, unresolvable revision, timeout)
// yields the tool's diagnostic text instead, never an error.
func (g *GitCLI) Diff(ctx context.Context, repoPath, oldRev, newRev string, paths []string, algorithm Algorithm) string {
	if g.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	args := []string{
		"-c", "core.safecrlf=false",
		"diff",
		"--ignore-blank-lines", "-w",
		"--diff-algorithm=" + string(algorithm),
		oldRev, newRev,
		"--find-renames",
		"--",
	}
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		if stderr.Len() > 0 {
			return stderr.String()
		}

		return runErr.Error()
	}

	return stdout.String()
}

func (g *GitCLI) binary() string {
	if g.Binary == "" {
		return DefaultBinary
	}

	return g.Binary
}
