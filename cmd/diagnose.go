package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitmend/gitmend/pkg/history"
	"github.com/gitmend/gitmend/pkg/repair"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Check repository health without changing anything",
	Long: `Runs the structural status check and the deep object-graph scan,
then prints what was found. Read-only; never repairs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, run, check := loadTooling()

		if !check.IsRepo(repoPath) {
			PrintError("Not a git repository: " + repoPath)
			return repair.ErrNotRepository
		}

		PrintInfo("Diagnosing: " + repoPath)

		statusOK := !check.IsCorrupted(repoPath)
		if statusOK {
			PrintSuccess("Structural check: status passes")
		} else {
			PrintError("Structural check: status FAILS")
		}

		scan := check.IntegrityScan(repoPath)
		realErrors := scan.RealErrors()
		dangling := len(scan.RawLines) - len(realErrors)

		if !scan.HasErrors() {
			PrintSuccess("Deep scan: object graph verified clean")
		} else {
			fmt.Printf("\nDeep scan found %d line(s), %d harmless (dangling):\n",
				len(scan.RawLines), dangling)
			max := cfg.MaxReportLines
			for i, line := range realErrors {
				if max > 0 && i >= max {
					fmt.Printf("  ... (%d more)\n", len(realErrors)-max)
					break
				}
				fmt.Printf("  %s\n", line)
			}
		}

		fmt.Println()
		if statusOK && len(realErrors) == 0 {
			PrintSuccess("Repository is healthy")
			return nil
		}

		PrintWarning("Corruption detected; run 'gitmend repair' to heal")

		// Show what a repair run would do, without doing any of it.
		session := repair.NewSession(repoPath, run, check, nil, cfg)
		plan := &repair.Plan{}
		plan.Analyze(session, history.NewStore(cfg.AbsHistoryDir()))
		plan.PrintSummary()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}
