// Package backup snapshots the working tree before any corrective phase
// mutates repository state.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Info describes one working-tree snapshot. The snapshot is owned by
// the invoking session and is never auto-deleted; removal is a user
// decision communicated in the final report.
type Info struct {
	Path         string
	Timestamp    time.Time
	OriginalPath string
	Size         int64
	Files        int
}

// SnapshotWorkingTree copies the working tree (excluding the git
// metadata directory) into a timestamped directory under root. It is a
// raw filesystem copy on purpose: a tool-assisted stash can fail on the
// very corruption being repaired. Must run before any mutating phase;
// callers treat failure as fatal to the whole run.
func SnapshotWorkingTree(repoPath, root string) (*Info, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path: %w", err)
	}

	now := time.Now()
	dest := filepath.Join(root, fmt.Sprintf("%s_%s", filepath.Base(abs), now.Format("20060102_150405")))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	info := &Info{
		Path:         dest,
		Timestamp:    now,
		OriginalPath: abs,
	}
	if err := copyTree(abs, dest, info); err != nil {
		return nil, fmt.Errorf("copy working tree: %w", err)
	}

	// The snapshot itself is the product; the info file is a courtesy.
	_ = writeInfoFile(info)
	return info, nil
}

// Verify checks that a snapshot directory still exists and is readable.
func Verify(info *Info) error {
	st, err := os.Stat(info.Path)
	if err != nil {
		return fmt.Errorf("backup not found: %s", info.Path)
	}
	if !st.IsDir() {
		return fmt.Errorf("backup is not a directory: %s", info.Path)
	}
	return nil
}

// copyTree recursively copies src into dst, skipping the git metadata
// directory, and accumulates size/file counts into info.
func copyTree(src, dst string, info *Info) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Name() == ".git" {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			st, err := os.Stat(srcPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dstPath, st.Mode()); err != nil {
				return err
			}
			if err := copyTree(srcPath, dstPath, info); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			// Sockets, device nodes and symlinks cannot hold the
			// repository content being protected; skip rather than
			// fail the whole snapshot.
			continue
		}
		n, err := copyFile(srcPath, dstPath)
		if err != nil {
			return err
		}
		info.Size += n
		info.Files++
	}
	return nil
}

// copyFile copies a single file, preserving its mode.
func copyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer dstFile.Close()

	n, err := dstFile.ReadFrom(srcFile)
	if err != nil {
		return n, err
	}

	st, err := os.Stat(src)
	if err != nil {
		return n, err
	}
	return n, os.Chmod(dst, st.Mode())
}

func writeInfoFile(info *Info) error {
	content := fmt.Sprintf(`Working Tree Snapshot
═══════════════════════════════════════════════════════════

Original Repository: %s
Snapshot Location:   %s
Snapshot Time:       %s
Files Copied:        %d (%.2f MB)

This snapshot was taken before any repair action ran. It contains the
working tree as it existed at that moment, without git metadata.

To restore a file:
  cp %s/<path> %s/<path>

Safe to delete once you are confident the repository is healthy.
`, info.OriginalPath, info.Path, info.Timestamp.Format("2006-01-02 15:04:05"),
		info.Files, float64(info.Size)/(1024*1024), info.Path, info.OriginalPath)

	return os.WriteFile(filepath.Join(info.Path, "backup-info.txt"), []byte(content), 0o644)
}
