package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitmend/gitmend/pkg/logger"
)

// Data contains everything needed to generate a run report
type Data struct {
	RepoPath     string
	StartTime    time.Time
	EndTime      time.Time
	InitialLines []string
	FinalLines   []string
	Operations   []logger.Operation
	BackupPath   string
	Healthy      bool
	FixedCount   int
	MaxLines     int
}

// Generate writes the run report to report.txt in runDir
func Generate(data *Data, runDir string) error {
	reportPath := filepath.Join(runDir, "report.txt")
	if err := os.WriteFile(reportPath, []byte(render(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func render(data *Data) string {
	var sb strings.Builder

	sb.WriteString("╔═══════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║              GITMEND - Repair Report                      ║\n")
	sb.WriteString("╚═══════════════════════════════════════════════════════════╝\n\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Repository: %s\n", data.RepoPath))
	sb.WriteString(fmt.Sprintf("Start Time: %s\n", data.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:   %s\n", data.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", data.EndTime.Sub(data.StartTime)))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", statusString(data.Healthy)))
	sb.WriteString("\n")

	sb.WriteString("BACKUP INFORMATION\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	if data.BackupPath != "" {
		sb.WriteString(fmt.Sprintf("Backup Location: %s\n", data.BackupPath))
		sb.WriteString("Status: ✅ Working tree snapshot created\n")
		sb.WriteString("\nTo restore a file, see backup-info.txt in the backup directory.\n")
	} else {
		sb.WriteString("Status: ⚠️  No backup created (repository was healthy)\n")
	}
	sb.WriteString("\n")

	sb.WriteString("ISSUES ANALYSIS\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Initial Issues Found: %d\n", len(data.InitialLines)))
	sb.WriteString(fmt.Sprintf("Final Issues Remaining: %d\n", len(data.FinalLines)))
	sb.WriteString(fmt.Sprintf("Files Healed: %d\n", data.FixedCount))
	sb.WriteString("\n")

	writeIssueSection(&sb, "INITIAL ISSUES DETECTED", data.InitialLines, data.MaxLines)
	writeIssueSection(&sb, "REMAINING ISSUES", data.FinalLines, data.MaxLines)

	sb.WriteString("OPERATIONS PERFORMED\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Total Operations: %d\n", len(data.Operations)))

	successCount := 0
	errorCount := 0
	for _, op := range data.Operations {
		if op.Success {
			successCount++
		} else {
			errorCount++
		}
	}
	sb.WriteString(fmt.Sprintf("Successful: %d\n", successCount))
	sb.WriteString(fmt.Sprintf("Errors: %d\n", errorCount))
	sb.WriteString("\n")

	// Detailed journal, grouped by phase in execution order.
	sb.WriteString("╔═══════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║              DETAILED OPERATION JOURNAL                   ║\n")
	sb.WriteString("╚═══════════════════════════════════════════════════════════╝\n\n")

	var phaseOrder []string
	phaseOps := make(map[string][]logger.Operation)
	for _, op := range data.Operations {
		if _, seen := phaseOps[op.Phase]; !seen {
			phaseOrder = append(phaseOrder, op.Phase)
		}
		phaseOps[op.Phase] = append(phaseOps[op.Phase], op)
	}

	for _, phase := range phaseOrder {
		sb.WriteString(fmt.Sprintf("\n%s\n", strings.Repeat("═", 63)))
		sb.WriteString(fmt.Sprintf("PHASE: %s\n", phase))
		sb.WriteString(fmt.Sprintf("%s\n\n", strings.Repeat("═", 63)))

		for _, op := range phaseOps[phase] {
			sb.WriteString(fmt.Sprintf("[%s] %s\n", op.Timestamp.Format("15:04:05"), op.Action))
			if op.Details != "" {
				sb.WriteString(fmt.Sprintf("  Details: %s\n", op.Details))
			}
			if op.Path != "" {
				sb.WriteString(fmt.Sprintf("  File: %s\n", op.Path))
			}
			if !op.Success && op.Error != "" {
				sb.WriteString(fmt.Sprintf("  ❌ ERROR: %s\n", op.Error))
			} else if op.Success {
				sb.WriteString("  ✅ Success\n")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeIssueSection(sb *strings.Builder, title string, lines []string, max int) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString(title + "\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	for i, line := range lines {
		if max > 0 && i >= max {
			sb.WriteString(fmt.Sprintf("  ... (%d more)\n", len(lines)-max))
			break
		}
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, line))
	}
	sb.WriteString("\n")
}

func statusString(healthy bool) string {
	if healthy {
		return "✅ HEALTHY"
	}
	return "⚠️  ISSUES REMAIN"
}
