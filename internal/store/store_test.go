package store

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/podomo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Slice persistence
// ============================================================

func TestLoadSliceAbsentKey(t *testing.T) {
	s := newTestStore(t)
	d := DefaultDurations()
	if s.loadSlice(KeyDurations, &d) {
		t.Fatal("absent key should report false")
	}
	if d != DefaultDurations() {
		t.Fatal("value must be left untouched for absent key")
	}
}

func TestLoadSliceCorruptValue(t *testing.T) {
	s := newTestStore(t)
	s.db.Exec(`INSERT INTO slices (key, value) VALUES (?, ?)`, KeyDurations, "{not json")

	d := DefaultDurations()
	if s.loadSlice(KeyDurations, &d) {
		t.Fatal("corrupt value should report false")
	}
	if d != DefaultDurations() {
		t.Fatal("corrupt value must not clobber the default")
	}
}

func TestSaveSliceOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.saveSlice("k", []int{1}); err != nil {
		t.Fatal(err)
	}
	if err := s.saveSlice("k", []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	var got []int
	if !s.loadSlice("k", &got) {
		t.Fatal("expected stored value")
	}
	if len(got) != 2 {
		t.Fatalf("expected overwritten value, got %v", got)
	}
}

func TestHasSlice(t *testing.T) {
	s := newTestStore(t)
	if s.HasSlice(KeyTodos) {
		t.Fatal("fresh store should have no todos slice")
	}
	s.SaveTasks([]Task{})
	if !s.HasSlice(KeyTodos) {
		t.Fatal("saved slice should be present")
	}
}

// ============================================================
// Durations
// ============================================================

func TestDurationsDefault(t *testing.T) {
	s := newTestStore(t)
	d := s.Durations()
	if d.Focus != 25 || d.ShortBreak != 5 || d.LongBreak != 15 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestDurationsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveDurations(Durations{Focus: 50, ShortBreak: 10, LongBreak: 30}); err != nil {
		t.Fatal(err)
	}
	d := s.Durations()
	if d.Focus != 50 || d.ShortBreak != 10 || d.LongBreak != 30 {
		t.Fatalf("round trip failed: %+v", d)
	}
}

func TestDurationsClampedOnSave(t *testing.T) {
	s := newTestStore(t)
	s.SaveDurations(Durations{Focus: 0, ShortBreak: 120, LongBreak: -3})
	d := s.Durations()
	if d.Focus != MinDurationMinutes {
		t.Fatalf("focus should clamp to %d, got %d", MinDurationMinutes, d.Focus)
	}
	if d.ShortBreak != MaxDurationMinutes {
		t.Fatalf("short break should clamp to %d, got %d", MaxDurationMinutes, d.ShortBreak)
	}
	if d.LongBreak != MinDurationMinutes {
		t.Fatalf("long break should clamp to %d, got %d", MinDurationMinutes, d.LongBreak)
	}
}

func TestDurationsSecondsPerMode(t *testing.T) {
	d := Durations{Focus: 25, ShortBreak: 5, LongBreak: 15}
	cases := []struct {
		mode Mode
		want int
	}{
		{ModeFocus, 1500},
		{ModeShortBreak, 300},
		{ModeLongBreak, 900},
	}
	for _, c := range cases {
		if got := d.Seconds(c.mode); got != c.want {
			t.Fatalf("Seconds(%s) = %d, want %d", c.mode, got, c.want)
		}
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("Work", "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Work" || p.Color != "#FF0000" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	got, ok := s.GetProject(p.ID)
	if !ok {
		t.Fatal("project not found after create")
	}
	if got.Name != "Work" {
		t.Fatalf("GetProject returned wrong name: %s", got.Name)
	}
}

func TestCreateProjectEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("", "#111"); err == nil {
		t.Fatal("expected error for empty project name")
	}
}

func TestCreateProjectDefaultColor(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Plain", "")
	if p.Color == "" {
		t.Fatal("empty color should get a default")
	}
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Old", "#333")
	if err := s.UpdateProject(p.ID, "New", "#444"); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetProject(p.ID)
	if updated.Name != "New" || updated.Color != "#444" {
		t.Fatalf("update failed: %+v", updated)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	other, _ := s.CreateProject("Other", "#111")
	s.CreateTask(p.ID, "doomed", PriorityMedium, 1)
	kept, _ := s.CreateTask(other.ID, "kept", PriorityMedium, 1)
	s.SetCurrentProject(p.ID)

	if err := s.DeleteProject(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetProject(p.ID); ok {
		t.Fatal("project should be gone")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != kept.ID {
		t.Fatalf("delete should cascade to the project's tasks only, got %d tasks", len(tasks))
	}
	if s.CurrentProject() != "" {
		t.Fatal("current project pointing at deleted project should clear")
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	task, err := s.CreateTask(p.ID, "Bug fix", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("empty priority should default to medium, got %s", task.Priority)
	}
	if task.EstimatedPomodoros != 1 {
		t.Fatalf("estimate should floor at 1, got %d", task.EstimatedPomodoros)
	}
	if task.CompletedPomodoros != 0 {
		t.Fatal("new task should have no completed pomodoros")
	}
}

func TestCreateTaskEmptyText(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	if _, err := s.CreateTask(p.ID, "", PriorityLow, 1); err == nil {
		t.Fatal("expected error for empty task text")
	}
}

func TestTasksForProjectIsolation(t *testing.T) {
	s := newTestStore(t)
	p1, _ := s.CreateProject("A", "#111")
	p2, _ := s.CreateProject("B", "#222")
	s.CreateTask(p1.ID, "Task A", PriorityLow, 1)
	s.CreateTask(p2.ID, "Task B", PriorityLow, 1)

	tasks := s.TasksForProject(p1.ID)
	if len(tasks) != 1 || tasks[0].Text != "Task A" {
		t.Fatal("TasksForProject should only return tasks for the given project")
	}
}

func TestToggleTask(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	task, _ := s.CreateTask(p.ID, "Feature", PriorityHigh, 2)

	s.ToggleTask(task.ID)
	got, _ := s.GetTask(task.ID)
	if !got.Completed {
		t.Fatal("task should be completed after toggle")
	}
	s.ToggleTask(task.ID)
	got, _ = s.GetTask(task.ID)
	if got.Completed {
		t.Fatal("task should be open after second toggle")
	}
}

func TestDeleteTaskClearsCurrent(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	task, _ := s.CreateTask(p.ID, "Feature", PriorityHigh, 2)
	s.SetCurrentTask(task.ID)

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetTask(task.ID); ok {
		t.Fatal("task should be gone")
	}
	if s.CurrentTask() != "" {
		t.Fatal("current task pointing at deleted task should clear")
	}
}

func TestIncrementTaskPomodoros(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	task, _ := s.CreateTask(p.ID, "Feature", PriorityMedium, 2)

	for i := 0; i < 3; i++ {
		if !s.IncrementTaskPomodoros(task.ID) {
			t.Fatal("increment on an existing task should report true")
		}
	}
	got, _ := s.GetTask(task.ID)
	if got.CompletedPomodoros != 3 {
		t.Fatalf("expected 3 completed, got %d", got.CompletedPomodoros)
	}
	// Counter is informational and may exceed the estimate.
	if got.CompletedPomodoros <= got.EstimatedPomodoros {
		t.Fatal("completed should be allowed to exceed the estimate")
	}
}

func TestIncrementTaskPomodorosNoTask(t *testing.T) {
	s := newTestStore(t)
	if s.IncrementTaskPomodoros("") {
		t.Fatal("no selected task should be a silent no-op")
	}
	if s.IncrementTaskPomodoros("missing-id") {
		t.Fatal("deleted task should be a silent no-op")
	}
}

func TestSubtasks(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Dev", "#000")
	task, _ := s.CreateTask(p.ID, "Feature", PriorityMedium, 2)

	sub, err := s.AddSubtask(task.ID, "step one")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSubtask(task.ID, sub.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if len(got.Subtasks) != 1 || !got.Subtasks[0].Completed {
		t.Fatalf("subtask toggle failed: %+v", got.Subtasks)
	}
}

// ============================================================
// Quick notes
// ============================================================

func TestQuickNotes(t *testing.T) {
	s := newTestStore(t)
	n, err := s.AddQuickNote("call dentist")
	if err != nil {
		t.Fatal(err)
	}
	s.AddQuickNote("water plants")

	notes := s.QuickNotes()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}

	s.DeleteQuickNote(n.ID)
	notes = s.QuickNotes()
	if len(notes) != 1 || notes[0].Text != "water plants" {
		t.Fatalf("delete failed: %+v", notes)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	cfg := s.Settings()
	if cfg.LongBreakInterval != 4 {
		t.Fatalf("expected interval 4, got %d", cfg.LongBreakInterval)
	}
	if cfg.DailyGoal != 8 {
		t.Fatalf("expected daily goal 8, got %d", cfg.DailyGoal)
	}
	if !cfg.Notifications {
		t.Fatal("notifications should default on")
	}
	if cfg.AlarmSound != "bell" {
		t.Fatalf("expected bell alarm, got %s", cfg.AlarmSound)
	}
}

func TestSettingsNormalizedOnSave(t *testing.T) {
	s := newTestStore(t)
	cfg := s.Settings()
	cfg.LongBreakInterval = 0
	cfg.DailyGoal = -2
	cfg.Volume = 9
	s.SaveSettings(cfg)

	got := s.Settings()
	if got.LongBreakInterval < 1 {
		t.Fatal("interval should normalize to at least 1")
	}
	if got.DailyGoal < 1 {
		t.Fatal("daily goal should normalize to at least 1")
	}
	if got.Volume > 1 {
		t.Fatal("volume should clamp to 1")
	}
}

// ============================================================
// Sound presets
// ============================================================

func TestSoundPresetDefaults(t *testing.T) {
	s := newTestStore(t)
	presets := s.SoundPresets()
	if len(presets) != 4 {
		t.Fatalf("expected 4 default presets, got %d", len(presets))
	}
	if presets[0].Name != "Rainy Cafe" {
		t.Fatalf("unexpected first preset: %s", presets[0].Name)
	}
}

func TestSoundPresetsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	custom := []SoundPreset{{ID: "p1", Name: "Mine", Sounds: []string{"rain"}}}
	s.SaveSoundPresets(custom)
	got := s.SoundPresets()
	if len(got) != 1 || got[0].Name != "Mine" {
		t.Fatalf("round trip failed: %+v", got)
	}
}
