// Package history recovers file content from VS Code's local edit
// history. It is the secondary source of truth for blob repair when a
// file is gone from both the object store and the working tree.
package history

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store scans a VS Code User/History directory. Each subdirectory holds
// an entries.json naming the tracked file (as a file:// URI) plus one
// snapshot file per saved version.
type Store struct {
	Base string
}

// NewStore returns a Store rooted at base.
func NewStore(base string) *Store {
	return &Store{Base: base}
}

// entriesFile mirrors the on-disk entries.json layout.
type entriesFile struct {
	Resource string `json:"resource"`
	Entries  []struct {
		ID        string `json:"id"`
		Timestamp int64  `json:"timestamp"`
	} `json:"entries"`
}

// version is one surviving snapshot of a tracked file.
type version struct {
	Source    string
	Timestamp int64
}

// FindLatest returns the path of the newest surviving history snapshot
// for absPath, or "" when the editor has no usable record of it.
func (s *Store) FindLatest(absPath string) string {
	versions := s.versionsFor(absPath)
	if len(versions) == 0 {
		return ""
	}
	return versions[0].Source
}

// Restore writes the newest history snapshot of absPath back to
// absPath, creating parent directories as needed. Returns false when no
// snapshot exists.
func (s *Store) Restore(absPath string) (bool, error) {
	source := s.FindLatest(absPath)
	if source == "" {
		return false, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// versionsFor collects snapshots for absPath, newest first.
func (s *Store) versionsFor(absPath string) []version {
	dirs, err := os.ReadDir(s.Base)
	if err != nil {
		return nil
	}

	var versions []version
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		entriesPath := filepath.Join(s.Base, dir.Name(), "entries.json")
		data, err := os.ReadFile(entriesPath)
		if err != nil {
			continue
		}
		var ef entriesFile
		if err := json.Unmarshal(data, &ef); err != nil {
			continue
		}
		if resourcePath(ef.Resource) != absPath {
			continue
		}
		for _, e := range ef.Entries {
			src := filepath.Join(s.Base, dir.Name(), e.ID)
			if _, err := os.Stat(src); err != nil {
				continue
			}
			versions = append(versions, version{Source: src, Timestamp: e.Timestamp})
		}
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Timestamp > versions[j].Timestamp
	})
	return versions
}

// resourcePath converts an entries.json file:// URI to a local path.
func resourcePath(resource string) string {
	if !strings.HasPrefix(resource, "file://") {
		return ""
	}
	unescaped, err := url.PathUnescape(strings.TrimPrefix(resource, "file://"))
	if err != nil {
		return ""
	}
	return unescaped
}
