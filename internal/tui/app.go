package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/audio"
	"github.com/sadopc/podomo/internal/export"
	"github.com/sadopc/podomo/internal/stats"
	"github.com/sadopc/podomo/internal/store"
	"github.com/sadopc/podomo/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	engine *timer.Engine
	ledger *stats.Ledger
	mixer  *audio.Mixer
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timer    timerView
	tasks    tasksView
	stats    statsView
	sounds   soundsView
	settings settingsView

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	engine := timer.New(s.Durations(), nil)
	ledger := stats.NewLedger(s)
	mixer := audio.NewMixer(audio.BellPlayer{})
	pipeline := timer.NewPipeline(s, ledger, mixer, nil)

	a := App{
		store:      s,
		engine:     engine,
		ledger:     ledger,
		mixer:      mixer,
		activeView: viewTimer,
		timer:      newTimerView(s, engine, pipeline),
		tasks:      newTasksView(s),
		stats:      newStatsView(s, ledger),
		sounds:     newSoundsView(s, mixer),
		settings:   newSettingsView(s),
		help:       h,
	}
	a.syncFromStore()
	a.timer.syncContext()
	return a
}

// syncFromStore pushes the stored durations and behavior settings into
// the engine and the mixer.
func (a *App) syncFromStore() {
	cfg := a.store.Settings()
	a.engine.SetDurations(a.store.Durations())
	a.engine.SetLongBreakInterval(cfg.LongBreakInterval)
	a.engine.SetAutoStart(cfg.AutoStartBreak, cfg.AutoStartFocus)
	a.mixer.SetMasterVolume(cfg.Volume)
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.sounds.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A capturing form gets the keystroke before any global binding.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			return a, a.doImport()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSounds
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The countdown keeps going regardless of the active view.
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case autoStartMsg:
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case sessionCompletedMsg:
		a.status = completionStatus(msg)
		if a.activeView == viewStats {
			return a, a.stats.refresh()
		}
		return a, nil

	case taskSelectedMsg:
		a.status = "Active: " + msg.projectName
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case contextChangedMsg:
		a.timer.syncContext()
		return a, nil

	case settingsSavedMsg:
		a.syncFromStore()
		a.status = "Settings saved"
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case importDoneMsg:
		a.syncFromStore()
		a.timer.syncContext()
		a.status = "Backup imported"
		return a, a.refreshCurrentView()
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSounds:
		a.sounds, cmd = a.sounds.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTasks:
		return a.tasks.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

// completionStatus builds the footer line for a finished session,
// including any badge unlocks.
func completionStatus(msg sessionCompletedMsg) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s complete", msg.mode.Label())
	if msg.mode == store.ModeFocus && msg.dayCount > 0 {
		fmt.Fprintf(&b, " (%d today)", msg.dayCount)
	}
	fmt.Fprintf(&b, " · next: %s", msg.nextMode.Label())
	for _, badge := range msg.newBadges {
		fmt.Fprintf(&b, " · %s %s unlocked!", badge.Icon, badge.Name)
	}
	return b.String()
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewTasks:
		content = a.tasks.view()
	case viewStats:
		content = a.stats.view()
	case viewSounds:
		content = a.sounds.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("podomo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator so the timer stays visible from any view.
	timerInfo := ""
	switch a.engine.State() {
	case timer.StateRunning:
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %s %s",
			a.engine.Mode().Label(), formatCountdown(a.engine.Remaining())))
	case timer.StatePaused:
		timerInfo = warningStyle.Render(fmt.Sprintf(" ⏸ %s %s",
			a.engine.Mode().Label(), formatCountdown(a.engine.Remaining())))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	options := []string{"JSON backup (full state)", "CSV stats (last 30 days)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range options {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// backupPath is where JSON backups are written and read from.
func backupPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "podomo-backup.json")
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		var path string
		if format == 0 {
			path = backupPath()
			if err := export.ToJSON(a.store, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
		} else {
			home, _ := os.UserHomeDir()
			dateStr := time.Now().Format("2006-01-02")
			path = filepath.Join(home, fmt.Sprintf("podomo-stats-%s.csv", dateStr))
			days := a.ledger.Range(time.Now(), 30)
			if err := export.StatsToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) doImport() tea.Cmd {
	return func() tea.Msg {
		path := backupPath()
		if err := export.FromJSON(a.store, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importDoneMsg{}
	}
}
