// Package gitlib wraps libgit2 (git2go) with the surface the discrepancy
// miner needs: opening a local checkout, iterating commit history and
// extracting the per-commit set of touched files with rename detection.
package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the size of a SHA-1 object id in bytes.
const HashSize = 20

// EmptyTreeID is the well-known object id of git's empty tree. Root commits
// are diffed against it so their files appear as additions from nothing.
const EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Hash is a git object id (SHA-1).
type Hash [HashSize]byte

// NewHash parses a hex object id. Malformed input yields the zero hash.
func NewHash(hexStr string) Hash {
	var h Hash

	decoded, err := hex.DecodeString(hexStr)
	if err != nil || len(decoded) != HashSize {
		return Hash{}
	}

	copy(h[:], decoded)

	return h
}

// EmptyTree returns the empty-tree object id.
func EmptyTree() Hash {
	return NewHash(EmptyTreeID)
}

// HashFromOid converts a libgit2 Oid to a Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	copy(h[:], oid[:])

	return h
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ToOid converts the hash back to a libgit2 Oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}
