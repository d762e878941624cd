package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitmend/gitmend/pkg/config"
	"github.com/gitmend/gitmend/pkg/diagnose"
	"github.com/gitmend/gitmend/pkg/gitexec"
)

var (
	repoPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "gitmend",
	Short: "Diagnose and heal corrupted Git repositories",
	Long: color.CyanString(`
╔═══════════════════════════════════════════════════════════╗
║               GITMEND - Git Repair Tool                   ║
║                                                           ║
║  Diagnoses object-store corruption and heals it with     ║
║  non-destructive recovery: zero-byte object cleanup,     ║
║  gc compaction, remote refetch and blob re-staging.      ║
╚═══════════════════════════════════════════════════════════╝
`),
	Version:           "1.0.0",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "r", ".", "Path to Git repository")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadTooling builds the shared config, runner and checker for a
// command invocation.
func loadTooling() (*config.Config, *gitexec.Runner, *diagnose.Checker) {
	cfg, err := config.Load()
	if err != nil {
		PrintWarning(fmt.Sprintf("Could not load config, using defaults: %v", err))
		cfg = config.Default()
	}
	run := gitexec.New()
	run.Timeout = cfg.LocalTimeout()
	run.Verbose = verbose
	return &cfg, run, diagnose.New(run)
}

// Helper functions for colored output
func PrintSuccess(msg string) {
	color.Green("[SUCCESS] " + msg)
}

func PrintError(msg string) {
	color.Red("[ERROR] " + msg)
}

func PrintWarning(msg string) {
	color.Yellow("[WARNING] " + msg)
}

func PrintInfo(msg string) {
	color.Cyan("[INFO] " + msg)
}
