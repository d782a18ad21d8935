package mine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

// CommitRecord is one commit yielded by Walk: its identity, the revision it
// is compared against and the set of files it touched.
type CommitRecord struct {
	Hash    gitlib.Hash
	Parents []gitlib.Hash
	// ParentRef is the comparison base: the first parent, or the empty
	// tree for root commits. Never a zero hash.
	ParentRef gitlib.Hash
	// Message is the commit message with newlines normalized to spaces.
	Message string
	Changes []gitlib.FileChange
}

// WalkOptions bounds and filters the traversal.
type WalkOptions struct {
	// MaxCommits caps the number of eligible commits; 0 means unbounded.
	MaxCommits int
	// IncludeMerges keeps multi-parent commits in the sequence. When
	// false they are excluded entirely and do not consume MaxCommits.
	IncludeMerges bool
}

// Walk returns the eligible commits of repo oldest-first: the revwalk runs
// newest-first from HEAD, MaxCommits keeps the newest eligible commits, and
// the result is reversed. Restartable only by calling Walk again.
func Walk(repo *gitlib.Repository, opts WalkOptions) ([]CommitRecord, error) {
	commits, err := collectCommits(repo, opts)
	if err != nil {
		return nil, err
	}

	reverseCommits(commits)

	records := make([]CommitRecord, 0, len(commits))

	for _, commit := range commits {
		record, buildErr := buildRecord(repo, commit)

		commit.Free()

		if buildErr != nil {
			return nil, buildErr
		}

		records = append(records, record)
	}

	return records, nil
}

// collectCommits gathers up to MaxCommits eligible commits, newest first.
func collectCommits(repo *gitlib.Repository, opts WalkOptions) ([]*gitlib.Commit, error) {
	iter, err := repo.Log()
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	defer iter.Close()

	var commits []*gitlib.Commit

	for opts.MaxCommits == 0 || len(commits) < opts.MaxCommits {
		commit, nextErr := iter.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}

		if nextErr != nil {
			freeCommits(commits)

			return nil, nextErr
		}

		if commit.NumParents() > 1 && !opts.IncludeMerges {
			commit.Free()

			continue
		}

		commits = append(commits, commit)
	}

	return commits, nil
}

func buildRecord(repo *gitlib.Repository, commit *gitlib.Commit) (CommitRecord, error) {
	record := CommitRecord{
		Hash:      commit.Hash(),
		ParentRef: gitlib.EmptyTree(),
		Message:   normalizeMessage(commit.Message()),
	}

	numParents := commit.NumParents()
	for i := 0; i < numParents; i++ {
		record.Parents = append(record.Parents, commit.ParentHash(i))
	}

	var parent *gitlib.Commit

	if numParents > 0 {
		record.ParentRef = record.Parents[0]

		lookedUp, err := repo.LookupCommit(record.ParentRef)
		if err != nil {
			return CommitRecord{}, fmt.Errorf("lookup parent of %s: %w", record.Hash, err)
		}
		defer lookedUp.Free()

		parent = lookedUp
	}

	changes, err := gitlib.ChangedFiles(repo, parent, commit)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("changes of %s: %w", record.Hash, err)
	}

	record.Changes = changes

	return record, nil
}

// normalizeMessage flattens a commit message to a single line.
func normalizeMessage(message string) string {
	return strings.ReplaceAll(strings.TrimSpace(message), "\n", " ")
}

func reverseCommits(commits []*gitlib.Commit) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}

func freeCommits(commits []*gitlib.Commit) {
	for _, commit := range commits {
		commit.Free()
	}
}
