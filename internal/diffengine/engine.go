// Package diffengine invokes an external line-oriented diff tool and
// exposes its output as opaque text. Computing diffs in-process is out of
// scope: the comparison logic stays independent of which engine is linked
// in, so alternative engines only need to satisfy Engine.
package diffengine

import (
	"context"
)

// Algorithm selects the diff algorithm the engine runs.
type Algorithm string

const (
	// Myers is git's classic greedy algorithm.
	Myers Algorithm = "myers"
	// Histogram is git's histogram-based algorithm.
	Histogram Algorithm = "histogram"
)

// Engine produces the unified diff text between two revisions, restricted
// to a set of candidate paths. Implementations return the tool's diagnostic
// text instead of failing, so a broken invocation still participates in the
// downstream equality comparison. Implementations must be deterministic for
// identical inputs and must not mutate the repository.
type Engine interface {
	Diff(ctx context.Context, repoPath, oldRev, newRev string, paths []string, algorithm Algorithm) string
}
