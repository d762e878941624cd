// Package repair implements the healing pipeline: a forward-only
// sequence of phases that each attempt one recovery technique and record
// what they changed.
package repair

import (
	"time"

	"github.com/gitmend/gitmend/pkg/backup"
	"github.com/gitmend/gitmend/pkg/config"
	"github.com/gitmend/gitmend/pkg/diagnose"
	"github.com/gitmend/gitmend/pkg/gitexec"
	"github.com/gitmend/gitmend/pkg/logger"
)

// Phase names one stage of the pipeline.
type Phase string

const (
	PhaseAssess  Phase = "assess"
	PhaseBackup  Phase = "backup"
	PhaseClean   Phase = "clean"
	PhaseCompact Phase = "compact"
	PhaseFetch   Phase = "fetch"
	PhaseBlobs   Phase = "blobs"
	PhaseVerify  Phase = "verify"
)

// PhaseOutcome records what one phase did. Phases never abort the
// pipeline; a failed phase is recorded and the next one runs.
type PhaseOutcome struct {
	Phase   Phase
	Ran     bool
	Changed bool
	Detail  string
	Err     string
}

// Session carries the state of one repair run through the pipeline.
type Session struct {
	RepoPath string
	Run      *gitexec.Runner
	Check    *diagnose.Checker
	Log      *logger.Logger
	Cfg      *config.Config

	StartTime time.Time

	// Initial is the scan taken before any phase mutated state; Final
	// is taken during verification. Comparing them is how the report
	// shows progress.
	Initial diagnose.CorruptionReport
	Final   diagnose.CorruptionReport

	Backup   *backup.Info
	Outcomes []PhaseOutcome

	// FixedAnything is true once any phase changed repository state.
	FixedAnything bool
	HealedCount   int

	// FinalHealthy is set by verification, or immediately when the
	// assessment finds nothing wrong.
	FinalHealthy bool

	// statusFailing tracks whether the structural status check is
	// currently failing. Phases consult it so they report a recovery
	// only when their own action flipped the check from failing to
	// passing, never when it was passing all along.
	statusFailing bool
}

// NewSession builds a session for repoPath using the shared runner,
// checker and journal.
func NewSession(repoPath string, run *gitexec.Runner, check *diagnose.Checker, log *logger.Logger, cfg *config.Config) *Session {
	return &Session{
		RepoPath:  repoPath,
		Run:       run,
		Check:     check,
		Log:       log,
		Cfg:       cfg,
		StartTime: time.Now(),
	}
}

// record appends an outcome and folds its Changed flag into the
// session-wide verdict.
func (s *Session) record(o PhaseOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.Changed {
		s.FixedAnything = true
	}
}
