// Package timer implements the countdown state machine and its
// completion pipeline. The engine owns only the arithmetic and the
// transitions; wall-clock scheduling belongs to the caller, which
// invokes Tick once per elapsed second while the engine is running.
package timer

import (
	"time"

	"github.com/sadopc/podomo/internal/store"
)

// State of the countdown.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return "idle"
}

// Clock supplies the current time for date keying. Swappable in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default wall-clock implementation.
func SystemClock() Clock { return systemClock{} }

// Completion describes a countdown that reached zero. Exactly one is
// produced per countdown, from Tick, never from Reset or SwitchMode.
type Completion struct {
	Mode        store.Mode // the mode that just finished
	NextMode    store.Mode
	AutoStart   bool // caller should Start after its fixed delay
	Date        string
	Hour        int
	ProjectID   string
	ProjectName string
	TaskID      string
	CycleCount  int
}

// Engine is the session state machine. It is not safe for concurrent
// use; the single-threaded event loop is the only mutator.
type Engine struct {
	clock Clock

	mode      store.Mode
	state     State
	remaining int // seconds, never negative
	cycle     int // focus sessions completed since the last long break

	durations store.Durations
	pending   *store.Durations // deferred while a countdown is running

	longBreakInterval int
	autoStartBreak    bool
	autoStartFocus    bool

	projectID   string
	projectName string
	taskID      string
}

// New returns an idle engine in focus mode with a full countdown.
func New(d store.Durations, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	d = d.Clamped()
	return &Engine{
		clock:             clock,
		mode:              store.ModeFocus,
		state:             StateIdle,
		remaining:         d.Seconds(store.ModeFocus),
		durations:         d,
		longBreakInterval: 4,
	}
}

func (e *Engine) Mode() store.Mode { return e.mode }
func (e *Engine) State() State     { return e.state }
func (e *Engine) Remaining() int   { return e.remaining }
func (e *Engine) Cycle() int       { return e.cycle }
func (e *Engine) Running() bool    { return e.state == StateRunning }

// Total returns the full countdown length for the current mode.
func (e *Engine) Total() int { return e.durations.Seconds(e.mode) }

// Start arms the countdown. No-op when already running. A spent
// countdown is re-armed to the full duration first.
func (e *Engine) Start() {
	if e.state == StateRunning {
		return
	}
	if e.remaining <= 0 {
		e.applyPending()
		e.remaining = e.durations.Seconds(e.mode)
	}
	e.state = StateRunning
}

// Pause suspends a running countdown. No-op otherwise.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.state = StatePaused
}

// Reset stops the countdown and restores the full duration for the
// current mode. The cycle count is untouched.
func (e *Engine) Reset() {
	e.applyPending()
	e.state = StateIdle
	e.remaining = e.durations.Seconds(e.mode)
}

// SwitchMode selects a new mode and always stops the countdown; a
// manual switch never silently continues across modes.
func (e *Engine) SwitchMode(m store.Mode) {
	if !m.Valid() {
		return
	}
	e.applyPending()
	e.mode = m
	e.state = StateIdle
	e.remaining = e.durations.Seconds(m)
}

// Tick advances the countdown by one second. It returns a non-nil
// Completion exactly when the countdown reaches zero, and nil in every
// other case, including when the engine is not running.
func (e *Engine) Tick() *Completion {
	if e.state != StateRunning {
		return nil
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return nil
	}
	return e.complete()
}

// complete handles a countdown that hit zero: records the finished
// mode, advances the cycle, computes the next mode, and leaves the
// engine idle at the start of that mode. Auto-start is signalled to
// the caller rather than performed here so the fixed delay stays with
// the wall-clock driver.
func (e *Engine) complete() *Completion {
	finished := e.mode
	e.state = StateIdle

	var next store.Mode
	if finished == store.ModeFocus {
		e.cycle++
		if e.cycle%e.longBreakInterval == 0 {
			next = store.ModeLongBreak
		} else {
			next = store.ModeShortBreak
		}
	} else {
		next = store.ModeFocus
		if finished == store.ModeLongBreak {
			e.cycle = 0
		}
	}

	e.applyPending()
	e.mode = next
	e.remaining = e.durations.Seconds(next)

	auto := false
	if finished == store.ModeFocus {
		auto = e.autoStartBreak
	} else {
		auto = e.autoStartFocus
	}

	now := e.clock.Now()
	return &Completion{
		Mode:        finished,
		NextMode:    next,
		AutoStart:   auto,
		Date:        now.Format("2006-01-02"),
		Hour:        now.Hour(),
		ProjectID:   e.projectID,
		ProjectName: e.projectName,
		TaskID:      e.taskID,
		CycleCount:  e.cycle,
	}
}

// SetDurations updates the countdown lengths. When idle the remaining
// time reflects the change immediately; while running the change is
// deferred so an active countdown is never truncated underneath the
// user.
func (e *Engine) SetDurations(d store.Durations) {
	d = d.Clamped()
	if e.state == StateRunning {
		e.pending = &d
		return
	}
	e.durations = d
	e.pending = nil
	if e.state == StateIdle {
		e.remaining = d.Seconds(e.mode)
	}
}

func (e *Engine) applyPending() {
	if e.pending != nil {
		e.durations = *e.pending
		e.pending = nil
	}
}

// Durations returns the active (not pending) durations.
func (e *Engine) Durations() store.Durations { return e.durations }

func (e *Engine) LongBreakInterval() int { return e.longBreakInterval }

func (e *Engine) SetLongBreakInterval(n int) {
	if n < 1 {
		n = 1
	}
	e.longBreakInterval = n
}

func (e *Engine) SetAutoStart(breakAfterFocus, focusAfterBreak bool) {
	e.autoStartBreak = breakAfterFocus
	e.autoStartFocus = focusAfterBreak
}

// SetActiveContext records the project/task the next focus completion
// is attributed to. Identifiers only; entities stay in the store.
func (e *Engine) SetActiveContext(projectID, projectName, taskID string) {
	e.projectID = projectID
	e.projectName = projectName
	e.taskID = taskID
}
