package gitlib

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// TestRepo builds throwaway repositories for tests.
type TestRepo struct {
	T    *testing.T
	Path string

	native *git2go.Repository
}

// NewTestRepo initializes an empty repository under a temp directory.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}

	t.Cleanup(repo.Free)

	return &TestRepo{T: t, Path: dir, native: repo}
}

// WriteFile creates or overwrites a file in the working directory.
func (tr *TestRepo) WriteFile(name, content string) {
	tr.T.Helper()

	path := filepath.Join(tr.Path, name)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		tr.T.Fatalf("mkdir: %v", err)
	}

	err = os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		tr.T.Fatalf("write file: %v", err)
	}
}

// RemoveFile deletes a file from the working directory.
func (tr *TestRepo) RemoveFile(name string) {
	tr.T.Helper()

	err := os.Remove(filepath.Join(tr.Path, name))
	if err != nil {
		tr.T.Fatalf("remove file: %v", err)
	}
}

// Commit stages everything and commits on HEAD.
func (tr *TestRepo) Commit(message string) Hash {
	tr.T.Helper()

	var parents []Hash

	head, err := tr.native.Head()
	if err == nil {
		parents = append(parents, HashFromOid(head.Target()))
		head.Free()
	}

	return tr.commitTree(message, "HEAD", parents)
}

// CommitWithParents stages everything and creates a commit with the given
// parents without moving any reference. Used to build side branches.
func (tr *TestRepo) CommitWithParents(message string, parents ...Hash) Hash {
	tr.T.Helper()

	return tr.commitTree(message, "", parents)
}

// MergeCommit creates a two-parent commit of HEAD and other, advancing HEAD.
func (tr *TestRepo) MergeCommit(message string, other Hash) Hash {
	tr.T.Helper()

	head, err := tr.native.Head()
	if err != nil {
		tr.T.Fatalf("get HEAD: %v", err)
	}

	first := HashFromOid(head.Target())
	head.Free()

	return tr.commitTree(message, "HEAD", []Hash{first, other})
}

func (tr *TestRepo) commitTree(message, refname string, parents []Hash) Hash {
	tr.T.Helper()

	index, err := tr.native.Index()
	if err != nil {
		tr.T.Fatalf("get index: %v", err)
	}
	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	if err != nil {
		tr.T.Fatalf("stage files: %v", err)
	}

	// AddAll does not drop entries for files removed from the workdir.
	err = index.UpdateAll([]string{"*"}, nil)
	if err != nil {
		tr.T.Fatalf("stage removals: %v", err)
	}

	err = index.Write()
	if err != nil {
		tr.T.Fatalf("write index: %v", err)
	}

	treeID, err := index.WriteTree()
	if err != nil {
		tr.T.Fatalf("write tree: %v", err)
	}

	tree, err := tr.native.LookupTree(treeID)
	if err != nil {
		tr.T.Fatalf("lookup tree: %v", err)
	}
	defer tree.Free()

	sig := &git2go.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  time.Now(),
	}

	parentCommits := make([]*git2go.Commit, 0, len(parents))

	for _, parent := range parents {
		commit, lookupErr := tr.native.LookupCommit(parent.ToOid())
		if lookupErr != nil {
			tr.T.Fatalf("lookup parent: %v", lookupErr)
		}

		parentCommits = append(parentCommits, commit)
	}

	oid, err := tr.native.CreateCommit(refname, sig, sig, message, tree, parentCommits...)
	if err != nil {
		tr.T.Fatalf("create commit: %v", err)
	}

	for _, parent := range parentCommits {
		parent.Free()
	}

	return HashFromOid(oid)
}
