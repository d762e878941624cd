package diagnose

import (
	"regexp"
	"strings"
)

// invalidObjectPattern matches the diagnostic line git emits when an
// index entry references an unreadable object:
//
//	error: invalid object 100644 <sha> for 'path/to/file'
var invalidObjectPattern = regexp.MustCompile(`error: invalid object \S+ ([0-9a-f]{4,64}) for '(.+?)'`)

// ParseInvalidObjectRefs extracts every (path, expected object id) pair
// named by invalid-object errors in the given diagnostic text. Unrelated
// lines are ignored, duplicate mentions of a path are collapsed to the
// first, and text with no matches yields an empty slice.
func ParseInvalidObjectRefs(errText string) []BlobRepairEntry {
	var entries []BlobRepairEntry
	seen := make(map[string]bool)
	for _, m := range invalidObjectPattern.FindAllStringSubmatch(errText, -1) {
		id, path := m[1], m[2]
		if seen[path] {
			continue
		}
		seen[path] = true
		entries = append(entries, BlobRepairEntry{Path: path, ObjectID: id})
	}
	return entries
}

// FilterRealErrors drops lines whose category is "dangling". The message
// format of the underlying tool is not a stable contract; all matching
// rules live here so they can evolve without touching the pipeline.
func FilterRealErrors(lines []string) []string {
	var real []string
	for _, line := range lines {
		if strings.Contains(line, "dangling") {
			continue
		}
		real = append(real, line)
	}
	return real
}

// fsckKeywords selects the interesting lines out of a fsck run; the
// tool mixes errors with informational output on both streams.
var fsckKeywords = []string{"error", "missing", "corrupt", "dangling"}

// scanLines filters combined fsck output down to its error lines,
// preserving order.
func scanLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, kw := range fsckKeywords {
			if strings.Contains(line, kw) {
				lines = append(lines, line)
				break
			}
		}
	}
	return lines
}
