package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/podomo/internal/stats"
	"github.com/sadopc/podomo/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewStats
	viewSounds
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Stats", "Sounds", "Settings"}

// --- Messages ---

type tickMsg time.Time

// autoStartMsg fires after the post-completion delay when auto-chaining
// is enabled; gen guards against a stale delayed start after the user
// intervened manually.
type autoStartMsg struct {
	gen int
}

type statusMsg struct {
	text    string
	isError bool
}

type sessionCompletedMsg struct {
	mode      store.Mode
	nextMode  store.Mode
	newBadges []stats.Badge
	dayCount  int
}

// taskSelectedMsg is emitted by the tasks view when the active task
// context changes.
type taskSelectedMsg struct {
	projectID   string
	projectName string
	taskID      string
}

// contextChangedMsg tells the app the stored project/task references
// may have gone stale (a delete, an import) and the timer context needs
// a resync before the next completion is attributed.
type contextChangedMsg struct{}

func contextChanged() tea.Msg { return contextChangedMsg{} }

// settingsSavedMsg tells the app to re-sync the engine and mixer from
// the store.
type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct{}

// --- Helpers ---

// formatCountdown renders remaining seconds as MM:SS.
func formatCountdown(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
