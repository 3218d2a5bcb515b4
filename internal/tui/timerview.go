package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/store"
	"github.com/sadopc/podomo/internal/timer"
)

// autoStartDelay gives the alarm and notification a moment to land
// before the next countdown is armed.
const autoStartDelay = 3 * time.Second

type timerView struct {
	store    *store.Store
	engine   *timer.Engine
	pipeline *timer.Pipeline
	width    int
	height   int

	projectName string
	taskText    string

	// autoGen invalidates a pending auto-start once the user
	// intervenes manually.
	autoGen int
}

func newTimerView(s *store.Store, engine *timer.Engine, pipeline *timer.Pipeline) timerView {
	return timerView{store: s, engine: engine, pipeline: pipeline}
}

func (t *timerView) setSize(w, h int) {
	t.width = w
	t.height = h
}

// syncContext refreshes the active project/task labels from the store
// and hands the identifiers to the engine.
func (t *timerView) syncContext() {
	t.projectName = ""
	t.taskText = ""
	projectID := t.store.CurrentProject()
	taskID := t.store.CurrentTask()
	if p, ok := t.store.GetProject(projectID); ok {
		t.projectName = p.Name
	} else {
		projectID = ""
	}
	if task, ok := t.store.GetTask(taskID); ok {
		t.taskText = task.Text
	} else {
		taskID = ""
	}
	t.engine.SetActiveContext(projectID, t.projectName, taskID)
}

func (t timerView) update(msg tea.Msg) (timerView, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !t.engine.Running() {
			return t, nil
		}
		c := t.engine.Tick()
		if c == nil {
			return t, nil
		}
		return t.handleCompletion(c)

	case autoStartMsg:
		// A stale delayed start must not fire after a manual
		// intervention.
		if msg.gen == t.autoGen && !t.engine.Running() {
			t.engine.Start()
		}
		return t, nil

	case taskSelectedMsg:
		t.syncContext()
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.StartPause):
			t.autoGen++
			if t.engine.Running() {
				t.engine.Pause()
			} else {
				t.engine.Start()
			}
			return t, nil
		case key.Matches(msg, keys.Reset):
			t.autoGen++
			t.engine.Reset()
			return t, nil
		case key.Matches(msg, keys.Left):
			t.autoGen++
			t.engine.SwitchMode(prevMode(t.engine.Mode()))
			return t, nil
		case key.Matches(msg, keys.Right):
			t.autoGen++
			t.engine.SwitchMode(nextMode(t.engine.Mode()))
			return t, nil
		}
	}
	return t, nil
}

func (t timerView) handleCompletion(c *timer.Completion) (timerView, tea.Cmd) {
	res := t.pipeline.HandleCompletion(*c)

	var cmds []tea.Cmd
	cmds = append(cmds, func() tea.Msg {
		return sessionCompletedMsg{
			mode:      c.Mode,
			nextMode:  c.NextMode,
			newBadges: res.NewBadges,
			dayCount:  res.DayCount,
		}
	})

	if c.AutoStart {
		gen := t.autoGen
		cmds = append(cmds, tea.Tick(autoStartDelay, func(time.Time) tea.Msg {
			return autoStartMsg{gen: gen}
		}))
	}

	return t, tea.Batch(cmds...)
}

func prevMode(m store.Mode) store.Mode {
	for i, mode := range store.Modes {
		if mode == m {
			return store.Modes[(i+len(store.Modes)-1)%len(store.Modes)]
		}
	}
	return store.ModeFocus
}

func nextMode(m store.Mode) store.Mode {
	for i, mode := range store.Modes {
		if mode == m {
			return store.Modes[(i+1)%len(store.Modes)]
		}
	}
	return store.ModeFocus
}

func (t timerView) view() string {
	w := t.width - 4

	// Mode switcher
	var tabs []string
	for _, m := range store.Modes {
		if m == t.engine.Mode() {
			style := activeTabStyle.BorderForeground(modeColor(string(m))).Foreground(modeColor(string(m)))
			tabs = append(tabs, style.Render(m.Label()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(m.Label()))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	// Big countdown
	color := modeColor(string(t.engine.Mode()))
	display := countdownStyle.Foreground(color).Width(w - 6).Render(formatCountdown(t.engine.Remaining()))

	// State line
	var state string
	switch t.engine.State() {
	case timer.StateRunning:
		state = successStyle.Render("●  RUNNING")
	case timer.StatePaused:
		state = warningStyle.Render("⏸  PAUSED")
	default:
		state = mutedStyle.Render("■  READY")
	}

	// Cycle dots toward the long break
	dots := t.renderCycleDots()

	// Active context
	context := mutedStyle.Render("No active task")
	if t.projectName != "" || t.taskText != "" {
		line := highlightStyle.Render(t.projectName)
		if t.taskText != "" {
			line += mutedStyle.Render(" / " + t.taskText)
		}
		context = line
	}

	controls := mutedStyle.Render("space: start/pause  r: reset  ←/→: mode")

	rows := []string{
		modeTabs,
		"",
		display,
		state,
		"",
		dots,
		context,
	}

	// Breaks come with a suggestion for what to do with them.
	if t.engine.Mode() != store.ModeFocus {
		act := timer.SuggestActivity(t.engine.Cycle())
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s %s (%d min)", act.Icon, act.Text, act.Minutes)))
	}

	rows = append(rows, "", controls)
	content := lipgloss.JoinVertical(lipgloss.Center, rows...)

	if t.engine.Running() {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (t timerView) renderCycleDots() string {
	interval := t.engine.LongBreakInterval()
	done := t.engine.Cycle()
	if done > interval {
		done = interval
	}

	var parts []string
	for i := 0; i < interval; i++ {
		if i < done {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d until long break", interval-done))
	return strings.Join(parts, " ") + counter
}
