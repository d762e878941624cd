package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitmend/gitmend/pkg/gitexec"
)

func TestPauserDisabledWithoutUnit(t *testing.T) {
	p := New(gitexec.New(), "")
	assert.False(t, p.Pause())
	assert.False(t, p.Resume())
}

func TestResumeWithoutPauseIsNoop(t *testing.T) {
	p := New(gitexec.New(), "some.service")
	assert.False(t, p.Resume())
}

func TestPauseInactiveUnit(t *testing.T) {
	// A unit name that cannot exist: is-active fails, so nothing is
	// stopped and Resume stays a no-op.
	p := New(gitexec.New(), "gitmend-test-nonexistent-unit-xyz.service")
	assert.False(t, p.Pause())
	assert.False(t, p.Resume())
}
