package timer

import (
	"fmt"

	"github.com/sadopc/podomo/internal/audio"
	"github.com/sadopc/podomo/internal/stats"
	"github.com/sadopc/podomo/internal/store"
)

// Notifier is the best-effort desktop notification capability.
// Implementations must never block; absence of permission is a silent
// skip.
type Notifier interface {
	Notify(title, body string)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}

// Result reports what a completion produced, for the UI.
type Result struct {
	NewBadges  []stats.Badge
	DayCount   int
	TaskLinked bool
	Errs       []error
}

// Pipeline runs the completion side effects. Each sub-step is isolated:
// a failure in one (a deleted task, a bad write) never prevents the
// others from executing, and nothing here ever panics the timer path.
type Pipeline struct {
	store    *store.Store
	ledger   *stats.Ledger
	mixer    *audio.Mixer
	notifier Notifier
}

func NewPipeline(s *store.Store, ledger *stats.Ledger, mixer *audio.Mixer, notifier Notifier) *Pipeline {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Pipeline{store: s, ledger: ledger, mixer: mixer, notifier: notifier}
}

// HandleCompletion processes one countdown completion. Focus
// completions feed the ledger, the achievement state and the active
// task; every completion fires the alarm and a notification.
func (p *Pipeline) HandleCompletion(c Completion) Result {
	var res Result
	cfg := p.store.Settings()

	if c.Mode == store.ModeFocus {
		// Stat recording.
		dayCount := 0
		rec, err := p.ledger.RecordFocusCompletion(c.Date, c.ProjectName, c.Hour)
		if err != nil {
			res.Errs = append(res.Errs, fmt.Errorf("record stats: %w", err))
		} else {
			dayCount = rec.Count
		}
		res.DayCount = dayCount

		// Streak + badge evaluation.
		newly, err := p.ledger.ApplyFocusCompletion(c.Date, c.Hour, dayCount, cfg.DailyGoal)
		if err != nil {
			res.Errs = append(res.Errs, fmt.Errorf("update achievements: %w", err))
		}
		res.NewBadges = newly

		// Task estimate link. A deleted or unselected task is a no-op.
		res.TaskLinked = p.store.IncrementTaskPomodoros(c.TaskID)
	}

	// Completion effects are fire-and-forget.
	if p.mixer != nil {
		p.mixer.Alarm(cfg.AlarmSound)
	}
	if cfg.Notifications {
		p.notifier.Notify("podomo", completionMessage(c))
	}

	return res
}

func completionMessage(c Completion) string {
	if c.Mode == store.ModeFocus {
		return fmt.Sprintf("Focus session complete — time for a %s", c.NextMode.Label())
	}
	return "Break over — back to focus"
}
