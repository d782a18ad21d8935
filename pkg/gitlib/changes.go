package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// FileChange is one file touched by a commit relative to its comparison
// parent. Either path may be empty: added files carry only the new path,
// deleted files only the old one, renames carry both.
type FileChange struct {
	OldPath string
	NewPath string
}

// Valid reports whether the change carries at least one path. A change with
// neither path is malformed and contributes nothing downstream.
func (c FileChange) Valid() bool {
	return c.OldPath != "" || c.NewPath != ""
}

// Paths returns the deduplicated candidate paths of the change, old side
// first, for use as diff path filters.
func (c FileChange) Paths() []string {
	paths := make([]string, 0, 2)

	if c.OldPath != "" {
		paths = append(paths, c.OldPath)
	}

	if c.NewPath != "" && c.NewPath != c.OldPath {
		paths = append(paths, c.NewPath)
	}

	return paths
}

// ChangedFiles lists the files touched by commit relative to parent, with
// rename detection enabled. A nil parent diffs against the empty tree, so
// every file of a root commit appears as an addition.
func ChangedFiles(repo *Repository, parent, commit *Commit) ([]FileChange, error) {
	var oldTree *git2go.Tree

	if parent != nil {
		tree, err := parent.Tree()
		if err != nil {
			return nil, err
		}
		defer tree.Free()

		oldTree = tree.tree
	}

	newTree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	defer newTree.Free()

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	diff, err := repo.repo.DiffTreeToTree(oldTree, newTree.tree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	defer func() {
		_ = diff.Free()
	}()

	findOpts, err := git2go.DefaultDiffFindOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff find options: %w", err)
	}

	findOpts.Flags = git2go.DiffFindRenames

	err = diff.FindSimilar(&findOpts)
	if err != nil {
		return nil, fmt.Errorf("find renames: %w", err)
	}

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("get num deltas: %w", err)
	}

	changes := make([]FileChange, 0, numDeltas)

	for i := 0; i < numDeltas; i++ {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			continue
		}

		change, ok := changeFromDelta(delta)
		if !ok {
			continue
		}

		changes = append(changes, change)
	}

	return changes, nil
}

// changeFromDelta maps a libgit2 delta to a FileChange. Deltas that do not
// represent a touched file are dropped.
func changeFromDelta(delta git2go.DiffDelta) (FileChange, bool) {
	switch delta.Status {
	case git2go.DeltaAdded:
		return FileChange{NewPath: delta.NewFile.Path}, true
	case git2go.DeltaDeleted:
		return FileChange{OldPath: delta.OldFile.Path}, true
	case git2go.DeltaModified, git2go.DeltaRenamed, git2go.DeltaCopied:
		return FileChange{OldPath: delta.OldFile.Path, NewPath: delta.NewFile.Path}, true
	case git2go.DeltaUnmodified, git2go.DeltaIgnored, git2go.DeltaUntracked,
		git2go.DeltaTypeChange, git2go.DeltaUnreadable, git2go.DeltaConflicted:
		return FileChange{}, false
	}

	return FileChange{}, false
}
