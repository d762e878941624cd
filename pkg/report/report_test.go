package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmend/gitmend/pkg/logger"
)

func sampleData() *Data {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &Data{
		RepoPath:     "/home/user/project",
		StartTime:    start,
		EndTime:      start.Add(42 * time.Second),
		InitialLines: []string{"missing blob aaaa", "dangling commit bbbb"},
		FinalLines:   nil,
		Operations: []logger.Operation{
			{Timestamp: start, Phase: "assess", Action: "PHASE", Details: "classify repository health", Success: true},
			{Timestamp: start, Phase: "blobs", Action: "restaged", Path: "readme.txt", Success: true},
			{Timestamp: start, Phase: "compact", Action: "gc", Details: "gc", Success: false, Error: "gc exited nonzero"},
		},
		BackupPath: "/home/user/.gitmend/stash/project_20260301_100000",
		Healthy:    true,
		FixedCount: 1,
		MaxLines:   8,
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleData(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Repository: /home/user/project")
	assert.Contains(t, content, "Initial Issues Found: 2")
	assert.Contains(t, content, "Final Issues Remaining: 0")
	assert.Contains(t, content, "Files Healed: 1")
	assert.Contains(t, content, "HEALTHY")
	assert.Contains(t, content, "Backup Location: /home/user/.gitmend/stash/project_20260301_100000")
	assert.Contains(t, content, "PHASE: blobs")
	assert.Contains(t, content, "File: readme.txt")
	assert.Contains(t, content, "ERROR: gc exited nonzero")
}

func TestRenderWithoutBackup(t *testing.T) {
	data := sampleData()
	data.BackupPath = ""
	content := render(data)
	assert.Contains(t, content, "No backup created")
}

func TestRenderResidualIssuesTruncated(t *testing.T) {
	data := sampleData()
	data.Healthy = false
	data.MaxLines = 2
	data.FinalLines = []string{"err one", "err two", "err three", "err four"}

	content := render(data)
	assert.Contains(t, content, "ISSUES REMAIN")
	assert.Contains(t, content, "err one")
	assert.Contains(t, content, "err two")
	assert.NotContains(t, content, "err three")
	assert.Contains(t, content, "... (2 more)")
}

func TestRenderOperationCounts(t *testing.T) {
	content := render(sampleData())
	assert.Contains(t, content, "Total Operations: 3")
	assert.Contains(t, content, "Successful: 2")
	assert.Contains(t, content, "Errors: 1")
}
