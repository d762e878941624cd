package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitmend/gitmend/pkg/repair"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-run the health checks and print a verdict",
	Long: `Runs the same checks the repair pipeline uses for its final
verification. Useful after a repair, or after manual surgery.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, check := loadTooling()

		if !check.IsRepo(repoPath) {
			PrintError("Not a git repository: " + repoPath)
			return repair.ErrNotRepository
		}

		if check.Healthy(repoPath) {
			PrintSuccess("All checks pass; repository is healthy")
		} else {
			PrintWarning("Checks failed; run 'gitmend diagnose' for details")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
