// Package service pauses a background unit (typically a file
// synchronizer) for the duration of a repair so it cannot race the tool
// over object-store files.
package service

import (
	"github.com/gitmend/gitmend/pkg/gitexec"
)

// Pauser stops a systemd user unit and restarts it when released. A
// zero unit name disables pausing entirely.
type Pauser struct {
	Run  *gitexec.Runner
	Unit string

	stopped bool
}

// New returns a Pauser for the given unit name. An empty unit yields a
// no-op pauser.
func New(run *gitexec.Runner, unit string) *Pauser {
	return &Pauser{Run: run, Unit: unit}
}

// Pause stops the unit if one is configured and it is currently active.
// Failure to stop is reported but never blocks a repair; the repair
// simply proceeds with the unit running.
func (p *Pauser) Pause() bool {
	if p.Unit == "" {
		return false
	}
	if !p.Run.Command("", "systemctl", "--user", "is-active", "--quiet", p.Unit).Ok() {
		return false
	}
	p.stopped = p.Run.Command("", "systemctl", "--user", "stop", p.Unit).Ok()
	return p.stopped
}

// Resume restarts the unit if Pause actually stopped it. Safe to call
// unconditionally, including via defer.
func (p *Pauser) Resume() bool {
	if !p.stopped {
		return false
	}
	p.stopped = false
	return p.Run.Command("", "systemctl", "--user", "start", p.Unit).Ok()
}
