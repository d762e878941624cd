package repair

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gitmend/gitmend/pkg/backup"
	"github.com/gitmend/gitmend/pkg/history"
	"github.com/gitmend/gitmend/pkg/service"
)

// ErrNotRepository is returned when the target path holds no repository
// at all. It is the only condition the repair command treats as fatal
// at the process level.
var ErrNotRepository = errors.New("not a git repository")

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

// Execute runs the full pipeline against the session's repository. The
// phases run in a fixed forward order; none of them, apart from the
// initial assessment and the safety backup, can abort the run. Running
// Execute on a healthy repository changes nothing and exits early.
func (s *Session) Execute() error {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	cyan.Println("GITMEND REPAIR")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  Repository: %s\n", s.RepoPath)

	// Phase 1: assess.
	healthy, err := s.assess()
	if err != nil {
		return err
	}
	if healthy {
		return nil
	}

	// Phase 2: safety backup. Nothing mutates before this succeeds.
	if err := s.backupWorkingTree(); err != nil {
		return err
	}

	pauser := service.New(s.Run, s.Cfg.PauseService)
	if pauser.Pause() {
		s.Log.LogAction(string(PhaseBackup), "pause-service", s.Cfg.PauseService)
		defer func() {
			pauser.Resume()
			s.Log.LogAction(string(PhaseVerify), "resume-service", s.Cfg.PauseService)
		}()
	}

	s.cleanZeroObjects()
	s.compact()
	s.fetchRemotes()
	s.healBlobs()
	s.verify()
	return nil
}

// assess classifies the repository. Returns healthy=true when both
// checks pass, in which case the pipeline stops without creating a
// backup.
func (s *Session) assess() (bool, error) {
	fmt.Println("\n  Phase 1: Assessing repository health...")
	s.Log.LogPhase(string(PhaseAssess), "classify repository health")

	if !s.Check.IsRepo(s.RepoPath) {
		red.Println("\n  ✗ Not a git repository.")
		s.Log.LogError(string(PhaseAssess), "detect-repo", s.RepoPath, "no repository found")
		return false, ErrNotRepository
	}

	statusOK := !s.Check.IsCorrupted(s.RepoPath)
	s.statusFailing = !statusOK
	s.Initial = s.Check.IntegrityScan(s.RepoPath)
	realErrors := s.Initial.RealErrors()

	if statusOK && len(realErrors) == 0 {
		green.Println("\n  ✓ Repository appears healthy; no corruption detected.")
		fmt.Println("  If you are still seeing errors, run: git fsck --full")
		s.Log.LogAction(string(PhaseAssess), "verdict", "healthy, nothing to repair")
		s.record(PhaseOutcome{Phase: PhaseAssess, Ran: true, Detail: "healthy"})
		s.FinalHealthy = true
		return true, nil
	}

	if len(s.Initial.RawLines) > 0 {
		fmt.Printf("\n  Deep scan found %d issue(s):\n", len(s.Initial.RawLines))
		for i, line := range s.Initial.RawLines {
			if i >= 10 {
				fmt.Printf("    ... (%d more; run 'git fsck --full' to see all)\n", len(s.Initial.RawLines)-10)
				break
			}
			fmt.Printf("    %s\n", line)
		}
	} else {
		fmt.Println("\n  Status is failing but the deep scan is clean; likely a lock file or index issue.")
	}
	s.Log.LogAction(string(PhaseAssess), "verdict",
		fmt.Sprintf("corrupted: status ok=%v, scan lines=%d", statusOK, len(s.Initial.RawLines)))
	s.record(PhaseOutcome{Phase: PhaseAssess, Ran: true, Detail: "corruption detected"})
	return false, nil
}

// backupWorkingTree snapshots the working tree. Failure here aborts the
// run: no corrective phase may touch a repository whose content is not
// safely copied aside.
func (s *Session) backupWorkingTree() error {
	fmt.Println("\n  Phase 2: Stashing working tree as safety backup...")
	s.Log.LogPhase(string(PhaseBackup), "snapshot working tree")

	info, err := backup.SnapshotWorkingTree(s.RepoPath, s.Cfg.AbsBackupRoot())
	if err == nil {
		err = backup.Verify(info)
	}
	if err != nil {
		red.Printf("\n  ✗ Backup failed: %v\n", err)
		red.Println("  Refusing to touch the repository without a safety copy.")
		s.Log.LogError(string(PhaseBackup), "snapshot", s.RepoPath, err.Error())
		s.record(PhaseOutcome{Phase: PhaseBackup, Ran: true, Err: err.Error()})
		return fmt.Errorf("working tree backup failed: %w", err)
	}
	s.Backup = info
	green.Printf("  ✓ Working tree backed up → %s\n", info.Path)
	s.Log.LogAction(string(PhaseBackup), "snapshot",
		fmt.Sprintf("%d files to %s", info.Files, info.Path))
	s.record(PhaseOutcome{Phase: PhaseBackup, Ran: true, Detail: info.Path})
	return nil
}

func (s *Session) cleanZeroObjects() {
	fmt.Println("\n  Phase 3: Removing zero-byte corrupt objects...")
	s.Log.LogPhase(string(PhaseClean), "purge zero-byte loose objects")

	removed, failed := s.RemoveZeroLengthObjects()
	for _, rel := range removed {
		fmt.Printf("    🗑  Removed zero-byte object: %s\n", rel)
		s.Log.LogRepair(string(PhaseClean), "remove-object", rel, "zero-byte loose object")
	}
	for _, rel := range failed {
		yellow.Printf("    ⚠  Could not remove: %s\n", rel)
		s.Log.LogError(string(PhaseClean), "remove-object", rel, "unlink failed")
	}
	if len(removed) > 0 {
		green.Printf("  ✓ Removed %d zero-byte object(s)\n", len(removed))
	} else {
		green.Println("  ✓ No zero-byte objects found")
	}
	s.record(PhaseOutcome{
		Phase:   PhaseClean,
		Ran:     true,
		Changed: len(removed) > 0,
		Detail:  fmt.Sprintf("%d removed", len(removed)),
	})
}

func (s *Session) compact() {
	fmt.Println("\n  Phase 4: Running aggressive garbage collection...")
	s.Log.LogPhase(string(PhaseCompact), "gc --aggressive --prune=now")

	gcOK, recovered := s.AttemptCompaction()
	if !gcOK {
		// An interrupted repack can leave zero-length droppings in the
		// object store; purge them now so the next run does not mistake
		// them for fresh corruption.
		s.RemoveZeroLengthObjects()
	}
	switch {
	case recovered:
		green.Println("  ✓ Repository recovered via gc; status now passes.")
	case gcOK:
		fmt.Println("  ℹ gc completed but did not fully restore health; continuing...")
	default:
		yellow.Println("  ⚠ gc itself failed; continuing with remaining phases...")
		s.Log.LogError(string(PhaseCompact), "gc", s.RepoPath, "gc exited nonzero")
	}
	s.record(PhaseOutcome{
		Phase:   PhaseCompact,
		Ran:     true,
		Changed: recovered,
		Detail:  fmt.Sprintf("gc ok=%v recovered=%v", gcOK, recovered),
	})
}

func (s *Session) fetchRemotes() {
	fmt.Println("\n  Phase 5: Fetching from remotes...")
	s.Log.LogPhase(string(PhaseFetch), "repopulate objects from remotes")

	results := s.FetchAllRemotes()
	if len(results) == 0 {
		fmt.Println("  ℹ No remotes configured; skipping")
		s.record(PhaseOutcome{Phase: PhaseFetch, Ran: false, Detail: "no remotes"})
		return
	}

	anyOK := false
	for _, r := range results {
		if r.Ok() {
			green.Printf("    git fetch %s --tags --prune ✓\n", r.Remote)
			s.Log.LogAction(string(PhaseFetch), "fetch", r.Remote)
			anyOK = true
		} else {
			yellow.Printf("    git fetch %s --tags --prune ✗ (exit code %d)\n", r.Remote, r.ExitCode)
			s.Log.LogError(string(PhaseFetch), "fetch", r.Remote, fmt.Sprintf("exit code %d", r.ExitCode))
		}
	}

	changed := false
	if anyOK && s.statusFailing {
		if !s.Check.IsCorrupted(s.RepoPath) {
			green.Println("\n  ✓ Repository recovered after fetch; status passes.")
			changed = true
			s.statusFailing = false
		} else {
			fmt.Println("  ℹ Fetch completed but corruption persists; checking index...")
		}
	}
	s.record(PhaseOutcome{
		Phase:   PhaseFetch,
		Ran:     true,
		Changed: changed,
		Detail:  fmt.Sprintf("%d remote(s), fetch ok=%v", len(results), anyOK),
	})
}

func (s *Session) healBlobs() {
	fmt.Println("\n  Phase 6: Checking index for missing blob objects...")
	s.Log.LogPhase(string(PhaseBlobs), "heal index entries with unreadable blobs")

	entries := s.ProbeIndexErrors()
	if len(entries) == 0 {
		green.Println("  ✓ No missing blob objects in index")
		if len(s.Initial.RealErrors()) > 0 {
			fmt.Println("  ℹ The deep scan reported errors that name no index entry;")
			fmt.Println("    they are at the commit or tree level and may need a re-clone.")
			s.Log.LogAction(string(PhaseBlobs), "probe",
				"scan errors present but no index entries matched")
		}
		s.record(PhaseOutcome{Phase: PhaseBlobs, Ran: true, Detail: "index clean"})
		return
	}

	fmt.Printf("\n  Found %d file(s) with missing blob objects:\n", len(entries))
	for _, entry := range entries {
		fmt.Printf("    • %s\n", entry)
	}

	fmt.Printf("\n  Auto-healing %d file(s)...\n", len(entries))
	store := history.NewStore(s.Cfg.AbsHistoryDir())
	results := s.HealEntries(entries, store)

	healed := 0
	for _, r := range results {
		switch r.Method {
		case HealFailed:
			red.Printf("    ✗ %s: %s\n", r.Entry.Path, r.Detail)
			s.Log.LogError(string(PhaseBlobs), "heal", r.Entry.Path, r.Detail)
		case HealPlaceholder:
			yellow.Printf("    ⚠ %s: %s\n", r.Entry.Path, r.Detail)
			s.Log.LogRepair(string(PhaseBlobs), string(r.Method), r.Entry.Path, r.Detail)
			healed++
		default:
			fmt.Printf("    🔧 %s: %s\n", r.Entry.Path, r.Detail)
			s.Log.LogRepair(string(PhaseBlobs), string(r.Method), r.Entry.Path, r.Detail)
			healed++
		}
	}
	s.HealedCount = healed
	green.Printf("\n  ✓ Healed %d/%d file(s)\n", healed, len(entries))
	s.record(PhaseOutcome{
		Phase:   PhaseBlobs,
		Ran:     true,
		Changed: healed > 0,
		Detail:  fmt.Sprintf("healed %d/%d", healed, len(entries)),
	})
}

// verify re-runs both health checks and prints the verdict. The scan
// result is kept on the session for the report writer.
func (s *Session) verify() {
	fmt.Println("\n  Phase 7: Final health check...")
	s.Log.LogPhase(string(PhaseVerify), "re-run health checks")

	finalOK := !s.Check.IsCorrupted(s.RepoPath)
	s.Final = s.Check.IntegrityScan(s.RepoPath)
	realErrors := s.Final.RealErrors()
	s.FinalHealthy = finalOK && len(realErrors) == 0

	fmt.Println()
	if finalOK && len(realErrors) == 0 {
		green.Println("  ✅ Repository is healthy; all checks pass.")
		if !s.FixedAnything {
			fmt.Println("  (Was already healthy, or the issue was self-healing)")
		}
	} else {
		yellow.Println("  ⚠ Some issues remain:")
		max := s.Cfg.MaxReportLines
		for i, line := range realErrors {
			if i >= max {
				fmt.Printf("    ... (%d more)\n", len(realErrors)-max)
				break
			}
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()
		fmt.Println("  Next steps:")
		if !finalOK && s.Backup != nil {
			fmt.Println("    • Your working tree is backed up at:")
			fmt.Printf("      %s\n", s.Backup.Path)
		}
		fmt.Println("    • Run: git fsck --full  for the full object report")
		fmt.Println("    • If the remote is intact: git clone <url>  into a fresh directory")
	}

	if s.Backup != nil {
		fmt.Println()
		fmt.Printf("  Working tree backup kept at: %s\n", s.Backup.Path)
		fmt.Println("  (Safe to delete once you are confident everything is working)")
	}

	s.Log.LogAction(string(PhaseVerify), "verdict",
		fmt.Sprintf("status ok=%v, residual errors=%d", finalOK, len(realErrors)))
	s.record(PhaseOutcome{
		Phase:  PhaseVerify,
		Ran:    true,
		Detail: fmt.Sprintf("status ok=%v, residual errors=%d", finalOK, len(realErrors)),
	})
}

// Succeeded reports whether the repository ended the run healthy.
func (s *Session) Succeeded() bool {
	return s.FinalHealthy
}
