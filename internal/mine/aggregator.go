package mine

import (
	"context"

	"github.com/Sumatoshi-tech/diffdrift/internal/classify"
	"github.com/Sumatoshi-tech/diffdrift/internal/diffengine"
	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

// Aggregator turns file changes into comparison records by orchestrating
// the classifier, both diff invocations and the comparator.
type Aggregator struct {
	Engine diffengine.Engine
}

// RecordChange produces the record for one file change of one commit. The
// second return is false when the change carries neither path; such a
// change is skipped without error and contributes nothing.
func (a *Aggregator) RecordChange(
	ctx context.Context, repoName, repoPath string, commit CommitRecord, change gitlib.FileChange,
) (Record, bool) {
	paths := change.Paths()
	if len(paths) == 0 {
		return Record{}, false
	}

	oldRev := commit.ParentRef.String()
	newRev := commit.Hash.String()

	myers := a.Engine.Diff(ctx, repoPath, oldRev, newRev, paths, diffengine.Myers)
	histogram := a.Engine.Diff(ctx, repoPath, oldRev, newRev, paths, diffengine.Histogram)

	return Record{
		Repo:          repoName,
		OldPath:       change.OldPath,
		NewPath:       change.NewPath,
		CommitSHA:     newRev,
		ParentSHA:     oldRev,
		Message:       commit.Message,
		Category:      classify.File(change.OldPath, change.NewPath),
		DiffMyers:     myers,
		DiffHistogram: histogram,
		Discrepancy:   Compare(myers, histogram),
	}, true
}
