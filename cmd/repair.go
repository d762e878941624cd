package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitmend/gitmend/pkg/history"
	"github.com/gitmend/gitmend/pkg/logger"
	"github.com/gitmend/gitmend/pkg/repair"
	"github.com/gitmend/gitmend/pkg/report"
)

var planOnly bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Run the full healing pipeline",
	Long: `Runs the non-destructive repair pipeline: assess, back up the working
tree, purge zero-byte objects, compact, refetch from remotes, heal
broken index entries, then verify. Safe to run repeatedly; a healthy
repository is left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, run, check := loadTooling()

		if planOnly {
			session := repair.NewSession(repoPath, run, check, nil, cfg)
			if !check.IsRepo(repoPath) {
				PrintError("Not a git repository: " + repoPath)
				return repair.ErrNotRepository
			}
			plan := &repair.Plan{}
			plan.Analyze(session, history.NewStore(cfg.AbsHistoryDir()))
			plan.PrintSummary()
			return nil
		}

		log, err := logger.New(cfg.AbsRunRoot())
		if err != nil {
			PrintError(fmt.Sprintf("Could not create run journal: %v", err))
			return nil
		}
		defer log.Close()
		if verbose {
			PrintInfo("Logging to: " + log.RunDir())
		}

		session := repair.NewSession(repoPath, run, check, log, cfg)
		execErr := session.Execute()
		if errors.Is(execErr, repair.ErrNotRepository) {
			return execErr
		}

		data := &report.Data{
			RepoPath:     session.RepoPath,
			StartTime:    session.StartTime,
			EndTime:      time.Now(),
			InitialLines: session.Initial.RawLines,
			FinalLines:   session.Final.RealErrors(),
			Operations:   log.Operations(),
			Healthy:      session.Succeeded(),
			FixedCount:   session.HealedCount,
			MaxLines:     cfg.MaxReportLines,
		}
		if session.Backup != nil {
			data.BackupPath = session.Backup.Path
		}
		if err := report.Generate(data, log.RunDir()); err != nil {
			PrintWarning(fmt.Sprintf("Could not write report: %v", err))
		} else {
			fmt.Printf("\n  Full report: %s/report.txt\n", log.RunDir())
		}
		return nil
	},
}

func init() {
	repairCmd.Flags().BoolVar(&planOnly, "plan", false, "Preview the actions a repair would take without changing anything")
	rootCmd.AddCommand(repairCmd)
}
