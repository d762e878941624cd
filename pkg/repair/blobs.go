package repair

import (
	"os"
	"path/filepath"

	"github.com/gitmend/gitmend/pkg/diagnose"
	"github.com/gitmend/gitmend/pkg/history"
)

// HealMethod names how a broken index entry was resolved.
type HealMethod string

const (
	HealRestaged    HealMethod = "restaged"    // content still on disk, re-hashed
	HealFromHistory HealMethod = "history"     // restored from editor local history
	HealPlaceholder HealMethod = "placeholder" // content lost, empty marker created
	HealFailed      HealMethod = "failed"
)

// HealResult records the outcome for one index entry.
type HealResult struct {
	Entry  diagnose.BlobRepairEntry
	Method HealMethod
	Detail string
}

// ProbeIndexErrors surfaces index entries whose blobs are unreadable,
// without mutating anything. A dry-run tree write fails loudly when
// blobs are missing; a staged diff catches the cases write-tree misses.
func (s *Session) ProbeIndexErrors() []diagnose.BlobRepairEntry {
	res := s.Run.Git(s.RepoPath, "write-tree")
	if !res.Ok() {
		if entries := diagnose.ParseInvalidObjectRefs(res.Stderr); len(entries) > 0 {
			return entries
		}
	}
	diff := s.Run.Git(s.RepoPath, "diff", "--cached", "--stat")
	return diagnose.ParseInvalidObjectRefs(diff.Stderr)
}

// HealEntries repairs each broken index entry independently: a failure
// on one file never blocks the rest.
//
// For each entry the best available source of truth wins:
//  1. The working tree. If the file is on disk, unstage and re-stage so
//     a fresh object is hashed from the real content.
//  2. Editor local history, for files gone from disk entirely.
//  3. An empty placeholder. The content is lost; the placeholder lets
//     the repository become consistent again, and the report names the
//     file so the user knows what was sacrificed.
//
// An entry whose expected object is the well-known empty blob is
// special: the file is supposed to be empty, so it is (re)created empty
// and re-staged regardless of history.
func (s *Session) HealEntries(entries []diagnose.BlobRepairEntry, store *history.Store) []HealResult {
	results := make([]HealResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, s.healOne(entry, store))
	}
	return results
}

func (s *Session) healOne(entry diagnose.BlobRepairEntry, store *history.Store) HealResult {
	absPath := filepath.Join(s.RepoPath, entry.Path)
	onDisk := false
	if st, err := os.Stat(absPath); err == nil && st.Mode().IsRegular() {
		onDisk = true
	}

	if entry.ObjectID == diagnose.EmptyBlobID {
		// The index says the file is empty. Unless the disk copy has
		// real content to preserve, rewrite it empty so a clean object
		// gets hashed.
		if !onDisk {
			if err := writeEmpty(absPath); err != nil {
				return HealResult{Entry: entry, Method: HealFailed, Detail: err.Error()}
			}
		}
		return s.restage(entry, HealRestaged, "refreshed empty file object")
	}

	if onDisk {
		return s.restage(entry, HealRestaged, "re-hashed from working tree content")
	}

	if store != nil {
		restored, err := store.Restore(absPath)
		if err == nil && restored {
			return s.restage(entry, HealFromHistory, "restored from editor local history")
		}
	}

	// Content is unrecoverable. An empty marker keeps the index
	// consistent; the file is called out in the final report.
	if err := writeEmpty(absPath); err != nil {
		return HealResult{Entry: entry, Method: HealFailed, Detail: err.Error()}
	}
	return s.restage(entry, HealPlaceholder, "content lost, created empty placeholder")
}

// restage drops the broken index entry and re-adds the file from disk.
func (s *Session) restage(entry diagnose.BlobRepairEntry, method HealMethod, detail string) HealResult {
	s.Run.Git(s.RepoPath, "rm", "--cached", "--", entry.Path)
	if res := s.Run.Git(s.RepoPath, "add", "--", entry.Path); !res.Ok() {
		return HealResult{Entry: entry, Method: HealFailed, Detail: res.Stderr}
	}
	return HealResult{Entry: entry, Method: method, Detail: detail}
}

func writeEmpty(absPath string) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, nil, 0o644)
}
