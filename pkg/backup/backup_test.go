package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSnapshotWorkingTree(t *testing.T) {
	repo := t.TempDir()
	root := t.TempDir()

	writeFile(t, filepath.Join(repo, "main.go"), "package main\n")
	writeFile(t, filepath.Join(repo, "docs", "guide.md"), "# Guide\n")
	writeFile(t, filepath.Join(repo, ".git", "config"), "[core]\n")
	writeFile(t, filepath.Join(repo, ".git", "objects", "aa", "bbbb"), "obj")

	info, err := SnapshotWorkingTree(repo, root)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Files)
	assert.Greater(t, info.Size, int64(0))

	// Working tree content is copied.
	data, err := os.ReadFile(filepath.Join(info.Path, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))

	data, err = os.ReadFile(filepath.Join(info.Path, "docs", "guide.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Guide\n", string(data))

	// Git metadata is not.
	_, err = os.Stat(filepath.Join(info.Path, ".git"))
	assert.True(t, os.IsNotExist(err))

	// The restore instructions are written alongside.
	data, err = os.ReadFile(filepath.Join(info.Path, "backup-info.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), info.OriginalPath)
}

func TestSnapshotEmptyWorkingTree(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".git", "HEAD"), "ref: refs/heads/main\n")

	info, err := SnapshotWorkingTree(repo, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, info.Files)
}

func TestSnapshotPreservesMode(t *testing.T) {
	repo := t.TempDir()
	script := filepath.Join(repo, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))

	info, err := SnapshotWorkingTree(repo, t.TempDir())
	require.NoError(t, err)

	st, err := os.Stat(filepath.Join(info.Path, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), st.Mode().Perm())
}

func TestVerify(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "a.txt"), "a")

	info, err := SnapshotWorkingTree(repo, t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, Verify(info))

	require.NoError(t, os.RemoveAll(info.Path))
	assert.Error(t, Verify(info))
}

func TestSnapshotMissingRepo(t *testing.T) {
	_, err := SnapshotWorkingTree(filepath.Join(t.TempDir(), "gone"), t.TempDir())
	assert.Error(t, err)
}
