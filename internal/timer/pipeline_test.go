package timer

import (
	"testing"

	"github.com/sadopc/podomo/internal/audio"
	"github.com/sadopc/podomo/internal/stats"
	"github.com/sadopc/podomo/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// recordingPlayer captures alarm calls so the test can assert the
// completion chime fired.
type recordingPlayer struct {
	audio.NopPlayer
	alarms []string
}

func (p *recordingPlayer) Alarm(id string) { p.alarms = append(p.alarms, id) }

type recordingNotifier struct {
	bodies []string
}

func (n *recordingNotifier) Notify(title, body string) { n.bodies = append(n.bodies, body) }

func newTestPipeline(t *testing.T) (*Pipeline, *store.Store, *recordingPlayer, *recordingNotifier) {
	t.Helper()
	s := newTestStore(t)
	player := &recordingPlayer{}
	notifier := &recordingNotifier{}
	p := NewPipeline(s, stats.NewLedger(s), audio.NewMixer(player), notifier)
	return p, s, player, notifier
}

func focusCompletion(date string, hour int) Completion {
	return Completion{
		Mode:     store.ModeFocus,
		NextMode: store.ModeShortBreak,
		Date:     date,
		Hour:     hour,
	}
}

// ============================================================
// Focus completions
// ============================================================

func TestHandleFocusCompletionRecordsEverything(t *testing.T) {
	p, s, player, notifier := newTestPipeline(t)

	proj, _ := s.CreateProject("Coding", "#111")
	task, _ := s.CreateTask(proj.ID, "Feature", store.PriorityMedium, 2)

	c := focusCompletion("2024-01-01", 9)
	c.ProjectID = proj.ID
	c.ProjectName = proj.Name
	c.TaskID = task.ID

	res := p.HandleCompletion(c)
	if len(res.Errs) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errs)
	}
	if res.DayCount != 1 {
		t.Fatalf("expected day count 1, got %d", res.DayCount)
	}
	if !res.TaskLinked {
		t.Fatal("task increment should report linked")
	}

	rec := s.DailyStats()["2024-01-01"]
	if rec == nil || rec.Count != 1 || rec.Projects["Coding"] != 1 || rec.Hours[9] != 1 {
		t.Fatalf("unexpected day record: %+v", rec)
	}

	got, _ := s.GetTask(task.ID)
	if got.CompletedPomodoros != 1 {
		t.Fatalf("task should have 1 completed pomodoro, got %d", got.CompletedPomodoros)
	}

	a := s.Achievements()
	if a.TotalPomodoros != 1 || a.CurrentStreak != 1 {
		t.Fatalf("achievement counters not updated: %+v", a)
	}
	if !a.Unlocked("first_pomodoro") {
		t.Fatal("first completion should unlock first_pomodoro")
	}
	if len(res.NewBadges) == 0 {
		t.Fatal("new badge should be reported to the UI")
	}

	if len(player.alarms) != 1 {
		t.Fatalf("expected one alarm, got %d", len(player.alarms))
	}
	if len(notifier.bodies) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.bodies))
	}
}

func TestHandleFocusCompletionDeletedTask(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)

	c := focusCompletion("2024-01-01", 9)
	c.TaskID = "gone"

	res := p.HandleCompletion(c)
	if res.TaskLinked {
		t.Fatal("deleted task should be a silent no-op")
	}
	if len(res.Errs) != 0 {
		t.Fatalf("missing task must not be an error: %v", res.Errs)
	}
}

func TestHandleFocusCompletionNoProject(t *testing.T) {
	p, s, _, _ := newTestPipeline(t)

	res := p.HandleCompletion(focusCompletion("2024-01-01", 14))
	if res.DayCount != 1 {
		t.Fatalf("expected day count 1, got %d", res.DayCount)
	}
	rec := s.DailyStats()["2024-01-01"]
	if len(rec.Projects) != 0 {
		t.Fatal("no project set: per-project map should stay empty")
	}
}

// ============================================================
// Break completions
// ============================================================

func TestHandleBreakCompletionSkipsStats(t *testing.T) {
	p, s, player, _ := newTestPipeline(t)

	res := p.HandleCompletion(Completion{
		Mode:     store.ModeShortBreak,
		NextMode: store.ModeFocus,
		Date:     "2024-01-01",
		Hour:     10,
	})
	if res.DayCount != 0 || res.TaskLinked {
		t.Fatal("break completion must not touch stats or tasks")
	}
	if len(s.DailyStats()) != 0 {
		t.Fatal("break completion must not create day records")
	}
	if s.Achievements().TotalPomodoros != 0 {
		t.Fatal("break completion must not advance achievements")
	}
	if len(player.alarms) != 1 {
		t.Fatal("break completion still fires the alarm")
	}
}

// ============================================================
// Notifications
// ============================================================

func TestNotificationsDisabled(t *testing.T) {
	p, s, _, notifier := newTestPipeline(t)

	cfg := s.Settings()
	cfg.Notifications = false
	s.SaveSettings(cfg)

	p.HandleCompletion(focusCompletion("2024-01-01", 9))
	if len(notifier.bodies) != 0 {
		t.Fatal("notifications off: nothing should be sent")
	}
}

func TestNilNotifierDefaultsToNop(t *testing.T) {
	s := newTestStore(t)
	p := NewPipeline(s, stats.NewLedger(s), audio.NewMixer(nil), nil)
	// Must not panic.
	p.HandleCompletion(focusCompletion("2024-01-01", 9))
}
