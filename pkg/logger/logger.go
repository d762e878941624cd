package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger journals every operation of a run to a per-run directory
type Logger struct {
	logFile    *os.File
	runDir     string
	startTime  time.Time
	operations []Operation
}

// Operation represents a single operation performed during a run
type Operation struct {
	Timestamp time.Time
	Phase     string
	Action    string
	Details   string
	Success   bool
	Error     string
	Path      string
}

// New creates a logger writing under a timestamped subdirectory of
// runRoot. The run directory also receives the final report.
func New(runRoot string) (*Logger, error) {
	if err := os.MkdirAll(runRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run root: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runDir := filepath.Join(runRoot, timestamp)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	logPath := filepath.Join(runDir, "gitmend.log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &Logger{
		logFile:    logFile,
		runDir:     runDir,
		startTime:  time.Now(),
		operations: make([]Operation, 0),
	}
	l.writeHeader()
	return l, nil
}

func (l *Logger) writeHeader() {
	header := fmt.Sprintf(`╔═══════════════════════════════════════════════════════════╗
║             GITMEND - Detailed Operation Log              ║
╚═══════════════════════════════════════════════════════════╝

Start Time: %s
Run Directory: %s

`, l.startTime.Format("2006-01-02 15:04:05"), l.runDir)

	l.logFile.WriteString(header)
	l.logFile.Sync()
}

// LogPhase logs the start of a pipeline phase
func (l *Logger) LogPhase(phase, description string) {
	timestamp := time.Now()
	msg := fmt.Sprintf("\n[%s] PHASE: %s - %s\n",
		timestamp.Format("15:04:05"), phase, description)

	l.logFile.WriteString(msg)
	l.logFile.Sync()

	l.operations = append(l.operations, Operation{
		Timestamp: timestamp,
		Phase:     phase,
		Action:    "PHASE",
		Details:   description,
		Success:   true,
	})
}

// LogAction logs a specific action within a phase
func (l *Logger) LogAction(phase, action, details string) {
	timestamp := time.Now()
	msg := fmt.Sprintf("[%s]   ACTION: %s - %s\n",
		timestamp.Format("15:04:05"), action, details)

	l.logFile.WriteString(msg)
	l.logFile.Sync()

	l.operations = append(l.operations, Operation{
		Timestamp: timestamp,
		Phase:     phase,
		Action:    action,
		Details:   details,
		Success:   true,
	})
}

// LogRepair logs a repair applied to a specific file
func (l *Logger) LogRepair(phase, action, path, details string) {
	timestamp := time.Now()
	msg := fmt.Sprintf("[%s]   REPAIR: %s\n", timestamp.Format("15:04:05"), action)
	msg += fmt.Sprintf("            File: %s\n", path)
	if details != "" {
		msg += fmt.Sprintf("            Details: %s\n", details)
	}

	l.logFile.WriteString(msg)
	l.logFile.Sync()

	l.operations = append(l.operations, Operation{
		Timestamp: timestamp,
		Phase:     phase,
		Action:    action,
		Details:   details,
		Path:      path,
		Success:   true,
	})
}

// LogError logs a failed action
func (l *Logger) LogError(phase, action, details, errorMsg string) {
	timestamp := time.Now()
	msg := fmt.Sprintf("[%s]   ERROR: %s - %s\n",
		timestamp.Format("15:04:05"), action, details)
	msg += fmt.Sprintf("            Error: %s\n", errorMsg)

	l.logFile.WriteString(msg)
	l.logFile.Sync()

	l.operations = append(l.operations, Operation{
		Timestamp: timestamp,
		Phase:     phase,
		Action:    action,
		Details:   details,
		Success:   false,
		Error:     errorMsg,
	})
}

// LogInfo logs an informational message
func (l *Logger) LogInfo(phase, message string) {
	msg := fmt.Sprintf("[%s]   INFO: %s\n", time.Now().Format("15:04:05"), message)
	l.logFile.WriteString(msg)
	l.logFile.Sync()
}

// LogWarning logs a warning message
func (l *Logger) LogWarning(phase, message string) {
	msg := fmt.Sprintf("[%s]   WARNING: %s\n", time.Now().Format("15:04:05"), message)
	l.logFile.WriteString(msg)
	l.logFile.Sync()
}

// RunDir returns the directory holding this run's log and report
func (l *Logger) RunDir() string {
	return l.runDir
}

// Operations returns all logged operations
func (l *Logger) Operations() []Operation {
	return l.operations
}

// Close writes the summary footer and closes the log file
func (l *Logger) Close() error {
	duration := time.Since(l.startTime)

	footer := fmt.Sprintf(`
═══════════════════════════════════════════════════════════
End Time: %s
Duration: %s
Total Operations: %d
═══════════════════════════════════════════════════════════
`, time.Now().Format("2006-01-02 15:04:05"), duration, len(l.operations))

	l.logFile.WriteString(footer)
	l.logFile.Sync()
	return l.logFile.Close()
}
