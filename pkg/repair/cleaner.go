package repair

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RemoveZeroLengthObjects deletes zero-byte files under the object
// store. A zero-byte loose object is always the residue of an
// interrupted write and can never be valid; removing it lets later
// phases proceed instead of tripping over it. Returns the paths removed
// (relative to the git directory) and any paths that could not be
// removed.
func (s *Session) RemoveZeroLengthObjects() (removed, failed []string) {
	gitDir := s.gitDir()
	objectsDir := filepath.Join(gitDir, "objects")

	filepath.WalkDir(objectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() != 0 {
			return nil
		}
		rel, relErr := filepath.Rel(gitDir, path)
		if relErr != nil {
			rel = path
		}
		if err := os.Remove(path); err != nil {
			failed = append(failed, rel)
			return nil
		}
		removed = append(removed, rel)
		return nil
	})
	return removed, failed
}

// gitDir resolves the repository's metadata directory. Worktrees and
// GIT_DIR setups report a path outside <repo>/.git, so ask git rather
// than assume.
func (s *Session) gitDir() string {
	res := s.Run.Git(s.RepoPath, "rev-parse", "--git-dir")
	dir := strings.TrimSpace(res.Stdout)
	if !res.Ok() || dir == "" {
		dir = ".git"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.RepoPath, dir)
	}
	return dir
}
