package diagnose

import "fmt"

// EmptyBlobID is the well-known hash of the empty blob. An index entry
// pointing at it means the file is supposed to be empty.
const EmptyBlobID = "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"

// CorruptionReport is the result of a deep integrity scan.
type CorruptionReport struct {
	// RawLines holds the scan's error lines in the order they were
	// produced. Empty means the object graph verified clean.
	RawLines []string
}

// HasErrors reports whether the scan produced any error lines at all,
// including harmless ones.
func (r CorruptionReport) HasErrors() bool {
	return len(r.RawLines) > 0
}

// RealErrors returns the raw lines with purely informational categories
// removed. Dangling objects are unreferenced but structurally valid;
// they never count toward a corruption verdict.
func (r CorruptionReport) RealErrors() []string {
	return FilterRealErrors(r.RawLines)
}

// BlobRepairEntry identifies one index entry whose recorded object
// cannot be read from the store.
type BlobRepairEntry struct {
	// Path is relative to the repository root.
	Path string
	// ObjectID is the hash the index expected to resolve.
	ObjectID string
}

func (e BlobRepairEntry) String() string {
	id := e.ObjectID
	if len(id) > 12 {
		id = id[:12]
	}
	return fmt.Sprintf("%s (blob: %s...)", e.Path, id)
}
