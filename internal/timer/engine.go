// Package timer owns the single active-timer state machine. The
// authoritative state is the active flag plus the wall-clock anchor;
// elapsed time is always derived from the anchor and never persisted.
package timer

import (
	"errors"
	"time"

	"github.com/dkaraca/timecard/internal/store"
)

// ErrNoAnchor is returned by Continue when there is no retained start
// time to resume from.
var ErrNoAnchor = errors.New("timer: no start time to continue from")

// Engine tracks one in-flight timing session. It persists the anchor on
// every transition so a running timer survives process restarts, and it
// recomputes elapsed time on demand so suspended intervals are never
// lost. Engine is not safe for concurrent use; there is exactly one
// logical writer per session.
type Engine struct {
	store *store.Store
	now   func() time.Time

	active    bool
	startTime time.Time // zero means no anchor
	elapsed   int64     // seconds, derived
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// Restore loads a persisted timer on startup. A persisted active anchor
// resumes the Running state with elapsed recomputed from the anchor,
// not from any stored elapsed value.
func (e *Engine) Restore() error {
	start, active, err := e.store.LoadTimerState()
	if err != nil {
		return err
	}
	if active {
		e.active = true
		e.startTime = start
		e.recompute()
	}
	return nil
}

// Start anchors a new session at the current time. Starting while
// already running restarts the session with a fresh anchor; this
// mirrors the observed behavior of the app it replaces rather than
// guarding with a no-op.
func (e *Engine) Start() error {
	e.active = true
	e.startTime = e.now()
	e.elapsed = 0
	return e.store.SaveTimerState(e.startTime)
}

// Stop halts ticking but retains the anchor so the just-ended range can
// be read for conversion into an entry. The persisted keys are removed;
// only Reset or Continue decides the anchor's fate.
func (e *Engine) Stop() error {
	e.recompute()
	e.active = false
	return e.store.ClearTimerState()
}

// Reset forces a full return to idle from any state.
func (e *Engine) Reset() error {
	e.active = false
	e.startTime = time.Time{}
	e.elapsed = 0
	return e.store.ClearTimerState()
}

// Continue re-arms the timer using the retained anchor, so the session
// keeps its original start. It is a precondition failure to call this
// without an anchor.
func (e *Engine) Continue() error {
	if e.startTime.IsZero() {
		return ErrNoAnchor
	}
	e.active = true
	e.recompute()
	return e.store.SaveTimerState(e.startTime)
}

// Tick recomputes elapsed wall-clock time while running. The owner
// calls it once per second and again when the host process returns to
// the foreground, to correct for ticks missed while suspended.
func (e *Engine) Tick() {
	if e.active {
		e.recompute()
	}
}

// recompute derives elapsed from the anchor, clamping at zero so clock
// skew can never produce a negative reading.
func (e *Engine) recompute() {
	secs := int64(e.now().Sub(e.startTime) / time.Second)
	if secs < 0 {
		secs = 0
	}
	e.elapsed = secs
}

func (e *Engine) Active() bool { return e.active }

// Elapsed returns the seconds derived at the last recomputation.
func (e *Engine) Elapsed() int64 { return e.elapsed }

// StartTime returns the session anchor; ok is false when idle with no
// retained anchor.
func (e *Engine) StartTime() (time.Time, bool) {
	return e.startTime, !e.startTime.IsZero()
}
