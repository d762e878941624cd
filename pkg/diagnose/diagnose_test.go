package diagnose

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmend/gitmend/pkg/gitexec"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// newTestRepo initializes a repository with a single commit.
func newTestRepo(t *testing.T, run *gitexec.Runner) string {
	t.Helper()
	dir := t.TempDir()
	require.True(t, run.Git(dir, "init").Ok())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hello\n"), 0o644))
	require.True(t, run.Git(dir, "add", ".").Ok())
	require.True(t, run.Git(dir,
		"-c", "user.name=test", "-c", "user.email=test@test",
		"commit", "-m", "initial").Ok())
	return dir
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	run := gitexec.New()
	check := New(run)

	repo := newTestRepo(t, run)
	assert.True(t, check.IsRepo(repo))
	assert.False(t, check.IsRepo(t.TempDir()))
}

func TestHealthyRepo(t *testing.T) {
	requireGit(t)
	run := gitexec.New()
	check := New(run)
	repo := newTestRepo(t, run)

	assert.False(t, check.IsCorrupted(repo))
	assert.True(t, check.Healthy(repo))

	scan := check.IntegrityScan(repo)
	assert.Empty(t, scan.RealErrors())
}

func TestIntegrityScanDetectsMissingObject(t *testing.T) {
	requireGit(t)
	run := gitexec.New()
	check := New(run)
	repo := newTestRepo(t, run)

	// Delete the committed blob out from under the repository.
	sha := deleteBlobObject(t, run, repo, "readme.txt")

	scan := check.IntegrityScan(repo)
	require.True(t, scan.HasErrors())
	assert.NotEmpty(t, scan.RealErrors())
	assert.Contains(t, strings.Join(scan.RawLines, "\n"), sha[:8])
	assert.False(t, check.Healthy(repo))
}

func TestIsCorruptedOnNonRepo(t *testing.T) {
	requireGit(t)
	check := New(gitexec.New())
	assert.False(t, check.IsCorrupted(t.TempDir()))
}

// deleteBlobObject removes the loose object backing a tracked file and
// returns its hash.
func deleteBlobObject(t *testing.T, run *gitexec.Runner, repo, path string) string {
	t.Helper()
	res := run.Git(repo, "rev-parse", ":"+path)
	require.True(t, res.Ok())
	sha := res.Stdout[:40]
	objPath := filepath.Join(repo, ".git", "objects", sha[:2], sha[2:])
	require.NoError(t, os.Remove(objPath))
	return sha
}
