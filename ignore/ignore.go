// ignore.go - exclude-pattern filtering for the walker (spec §6)
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

// Package ignore decides whether a path under a copy root should be
// skipped, the same kind of decision a .dockerignore or .gitignore
// file makes.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
)

// ignoreFile is the filename consulted at a source root, in the spirit
// of .gitignore/.dockerignore.
const ignoreFile = ".xcpignore"

// Decision is the verdict Predicate.Test returns for a path.
type Decision int

const (
	// Accept means the entry should be copied.
	Accept Decision = iota
	// Prune means the entry (and, for a directory, its entire
	// subtree) should be skipped.
	Prune
)

// Predicate decides whether a relative path is excluded. isDir lets
// implementations special-case directory pruning (skip descending)
// versus file exclusion (skip just this entry).
type Predicate interface {
	Test(relPath string, isDir bool) Decision
}

// Factory builds a Predicate scoped to a copy root and a set of
// exclude patterns, e.g. from --exclude flags.
type Factory func(root string, patterns []string) (Predicate, error)

// Default is the Factory used when a Config doesn't supply one: glob
// patterns matched with .dockerignore semantics (leading "!" negates,
// "**" matches across directory separators), combining the caller's
// explicit patterns with a .xcpignore file at root, if one exists.
func Default(root string, patterns []string) (Predicate, error) {
	all := append([]string(nil), patterns...)
	fromFile, err := readIgnoreFile(filepath.Join(root, ignoreFile))
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	all = append(all, fromFile...)

	if len(all) == 0 {
		return acceptAll{}, nil
	}
	pm, err := patternmatcher.New(all)
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	return &matcherPredicate{pm: pm}, nil
}

func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

type acceptAll struct{}

func (acceptAll) Test(string, bool) Decision { return Accept }

type matcherPredicate struct {
	pm *patternmatcher.PatternMatcher
}

func (m *matcherPredicate) Test(relPath string, isDir bool) Decision {
	matched, err := m.pm.MatchesOrParentMatches(relPath)
	if err != nil || !matched {
		return Accept
	}
	return Prune
}

var _ Predicate = acceptAll{}
var _ Predicate = (*matcherPredicate)(nil)
