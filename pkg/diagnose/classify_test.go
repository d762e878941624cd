package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvalidObjectRefs(t *testing.T) {
	stderr := `error: invalid object 100644 e69de29bb2d1d6434b8b29ae775ad8c2e48c5391 for 'docs/empty.md'
error: invalid object 100644 4b825dc642cb6eb9a060e54bf8d69288fbee4904 for 'src/main.go'
fatal: git-write-tree: error building trees
`
	entries := ParseInvalidObjectRefs(stderr)
	require.Len(t, entries, 2)
	assert.Equal(t, "docs/empty.md", entries[0].Path)
	assert.Equal(t, EmptyBlobID, entries[0].ObjectID)
	assert.Equal(t, "src/main.go", entries[1].Path)
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", entries[1].ObjectID)
}

func TestParseInvalidObjectRefsDeduplicatesByPath(t *testing.T) {
	stderr := `error: invalid object 100644 aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111 for 'same.txt'
error: invalid object 100644 bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222 for 'same.txt'
`
	entries := ParseInvalidObjectRefs(stderr)
	require.Len(t, entries, 1)
	assert.Equal(t, "same.txt", entries[0].Path)
	assert.Equal(t, "aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111", entries[0].ObjectID)
}

func TestParseInvalidObjectRefsNoMatches(t *testing.T) {
	entries := ParseInvalidObjectRefs("fatal: not a git repository\n")
	assert.Empty(t, entries)

	entries = ParseInvalidObjectRefs("")
	assert.Empty(t, entries)
}

func TestParseInvalidObjectRefsHandlesSpacesInPath(t *testing.T) {
	stderr := "error: invalid object 100644 cccc3333cccc3333cccc3333cccc3333cccc3333 for 'my docs/read me.txt'\n"
	entries := ParseInvalidObjectRefs(stderr)
	require.Len(t, entries, 1)
	assert.Equal(t, "my docs/read me.txt", entries[0].Path)
}

func TestFilterRealErrors(t *testing.T) {
	lines := []string{
		"missing blob 4b825dc642cb6eb9a060e54bf8d69288fbee4904",
		"dangling commit 1234567890abcdef1234567890abcdef12345678",
		"error: refs/heads/main: invalid sha1 pointer",
		"dangling blob abcdefabcdefabcdefabcdefabcdefabcdefabcd",
	}
	real := FilterRealErrors(lines)
	require.Len(t, real, 2)
	assert.Equal(t, "missing blob 4b825dc642cb6eb9a060e54bf8d69288fbee4904", real[0])
	assert.Equal(t, "error: refs/heads/main: invalid sha1 pointer", real[1])
}

func TestFilterRealErrorsAllDangling(t *testing.T) {
	real := FilterRealErrors([]string{
		"dangling commit 1234567890abcdef1234567890abcdef12345678",
	})
	assert.Empty(t, real)
}

func TestScanLines(t *testing.T) {
	output := `Checking object directories: 100% (256/256), done.
missing blob 4b825dc642cb6eb9a060e54bf8d69288fbee4904
dangling commit 1234567890abcdef1234567890abcdef12345678
Checking objects: 100% (50/50), done.
error: sha1 mismatch for ./objects/ab/cdef
`
	lines := scanLines(output)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "missing blob")
	assert.Contains(t, lines[1], "dangling commit")
	assert.Contains(t, lines[2], "error: sha1 mismatch")
}

func TestScanLinesEmptyOutput(t *testing.T) {
	assert.Empty(t, scanLines(""))
	assert.Empty(t, scanLines("Checking objects: 100% (50/50), done.\n"))
}

func TestCorruptionReport(t *testing.T) {
	clean := CorruptionReport{}
	assert.False(t, clean.HasErrors())
	assert.Empty(t, clean.RealErrors())

	harmless := CorruptionReport{RawLines: []string{"dangling blob abcd"}}
	assert.True(t, harmless.HasErrors())
	assert.Empty(t, harmless.RealErrors())

	broken := CorruptionReport{RawLines: []string{"missing blob abcd", "dangling blob efgh"}}
	assert.True(t, broken.HasErrors())
	assert.Equal(t, []string{"missing blob abcd"}, broken.RealErrors())
}

func TestBlobRepairEntryString(t *testing.T) {
	entry := BlobRepairEntry{Path: "src/main.go", ObjectID: "4b825dc642cb6eb9a060e54bf8d69288fbee4904"}
	assert.Equal(t, "src/main.go (blob: 4b825dc642cb...)", entry.String())

	short := BlobRepairEntry{Path: "a.txt", ObjectID: "abcd"}
	assert.Equal(t, "a.txt (blob: abcd...)", short.String())
}
