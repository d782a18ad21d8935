// Package classify assigns repository paths to coarse file categories.
package classify

import (
	"path"
	"strings"
)

// Category is the coarse kind of a changed file.
type Category string

// The five file categories.
const (
	Source  Category = "source"
	Test    Category = "test"
	Readme  Category = "readme"
	License Category = "license"
	Other   Category = "other"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{Source, Test, Readme, License, Other}
}

// sourceExts is the fixed set of recognized source file suffixes, covering
// common systems, scripting and markup source languages.
var sourceExts = map[string]struct{}{
	".c": {}, ".h": {}, ".cpp": {}, ".cc": {}, ".cxx": {}, ".hpp": {},
	".java": {}, ".py": {}, ".rb": {}, ".go": {}, ".rs": {}, ".php": {},
	".cs": {}, ".kt": {}, ".m": {}, ".mm": {}, ".swift": {},
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".scala": {}, ".pl": {}, ".r": {}, ".jl": {}, ".lua": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".ps1": {},
}

// File classifies a changed file by its paths. The new path wins when both
// are present so deleted files still classify by their old path. Total:
// every input maps to exactly one category.
//
// Precedence is deliberate and first-match-wins: a file named
// README_test.md is readme, not test.
func File(oldPath, newPath string) Category {
	p := strings.ToLower(newPath)
	if p == "" {
		p = strings.ToLower(oldPath)
	}

	base := path.Base(p)

	switch {
	case strings.HasPrefix(base, "readme"):
		return Readme
	case strings.HasPrefix(base, "license") || strings.HasPrefix(base, "licence"):
		return License
	case isTestPath(p):
		return Test
	case isSourcePath(p):
		return Source
	}

	return Other
}

// isTestPath matches the test heuristic: a path segment exactly "test" or
// "tests", a segment beginning with "test" followed by a non-letter
// (test_foo, test-runner), or a conftest.py file. Substrings inside a
// segment ("contest") and letter continuations ("testutils") do not match.
func isTestPath(p string) bool {
	if path.Base(p) == "conftest.py" {
		return true
	}

	for _, segment := range strings.Split(p, "/") {
		if segment == "test" || segment == "tests" {
			return true
		}

		if strings.HasPrefix(segment, "test") && len(segment) > len("test") && !isLetter(segment[len("test")]) {
			return true
		}
	}

	return false
}

func isSourcePath(p string) bool {
	_, ok := sourceExts[path.Ext(p)]

	return ok
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
