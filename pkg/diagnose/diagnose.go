// Package diagnose classifies repository health: a structural check
// (does a basic status query succeed) and a deep object-graph scan, plus
// the classifier that turns raw diagnostic text into repair targets.
package diagnose

import (
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitmend/gitmend/pkg/gitexec"
)

// Checker runs health checks against a repository path.
type Checker struct {
	Run *gitexec.Runner
}

// New returns a Checker using the given runner.
func New(run *gitexec.Runner) *Checker {
	return &Checker{Run: run}
}

// IsRepo reports whether path contains a git repository.
func (c *Checker) IsRepo(path string) bool {
	return c.Run.Git(path, "rev-parse", "--git-dir").Ok()
}

// IsCorrupted reports whether the repository's basic status query fails.
// A passing status can still mask object-graph corruption; pair this
// with IntegrityScan for a verdict.
func (c *Checker) IsCorrupted(path string) bool {
	if !c.IsRepo(path) {
		return false
	}
	return !c.Run.Git(path, "status").Ok()
}

// IntegrityScan walks the full object graph via git fsck and returns the
// raw error lines, augmented with reference targets go-git cannot
// resolve. It repairs nothing and is safe to run repeatedly.
func (c *Checker) IntegrityScan(path string) CorruptionReport {
	res := c.Run.Git(path, "fsck", "--full")
	lines := scanLines(res.Combined())
	lines = append(lines, c.scanReferences(path, lines)...)
	return CorruptionReport{RawLines: lines}
}

// Healthy reports whether the repository passes both the structural
// check and the deep scan. Either signal alone can be a false negative.
func (c *Checker) Healthy(path string) bool {
	if c.IsCorrupted(path) {
		return false
	}
	return len(c.IntegrityScan(path).RealErrors()) == 0
}

// scanReferences cross-checks every direct reference with go-git and
// reports targets that cannot be read as commits. fsck usually catches
// these too, so targets already named in existing lines are skipped.
func (c *Checker) scanReferences(path string, existing []string) []string {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil
	}
	refs, err := repo.References()
	if err != nil {
		return nil
	}

	known := strings.Join(existing, "\n")
	var extra []string
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() == plumbing.SymbolicReference {
			return nil
		}
		if ref.Hash().IsZero() {
			extra = append(extra, fmt.Sprintf("error: %s: reference has null target", ref.Name()))
			return nil
		}
		if _, err := repo.Object(plumbing.AnyObject, ref.Hash()); err != nil {
			if !strings.Contains(known, ref.Hash().String()) {
				extra = append(extra, fmt.Sprintf("missing object %s (referenced by %s)", ref.Hash(), ref.Name()))
			}
		}
		return nil
	})
	return extra
}
