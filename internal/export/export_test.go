package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

// seedStore fills a store with a little of everything.
func seedStore(t *testing.T, s *store.Store) {
	t.Helper()
	p, err := s.CreateProject("Coding", "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTask(p.ID, "Feature", store.PriorityHigh, 3); err != nil {
		t.Fatal(err)
	}
	s.SetCurrentProject(p.ID)
	s.SaveDurations(store.Durations{Focus: 30, ShortBreak: 6, LongBreak: 20})

	l := stats.NewLedger(s)
	l.RecordFocusCompletion("2024-01-01", "Coding", 9)
	l.ApplyFocusCompletion("2024-01-01", 9, 1, 8)
}

// ============================================================
// JSON backup
// ============================================================

func TestSnapshotIncludesEverything(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s)

	b := Snapshot(s)
	if b.Durations == nil || b.Durations.Focus != 30 {
		t.Fatal("snapshot missing durations")
	}
	if len(b.Todos) != 1 || len(b.Projects) != 1 {
		t.Fatal("snapshot missing tasks or projects")
	}
	if b.DailyStats["2024-01-01"] == nil {
		t.Fatal("snapshot missing daily stats")
	}
	if b.Achievements == nil || b.Achievements.TotalPomodoros != 1 {
		t.Fatal("snapshot missing achievements")
	}
	if b.CurrentProject == nil || *b.CurrentProject == "" {
		t.Fatal("snapshot missing current project")
	}
	if b.ExportDate == "" {
		t.Fatal("snapshot missing export date")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := newTestStore(t)
	seedStore(t, src)

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ToJSON(src, path); err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	if err := FromJSON(dst, path); err != nil {
		t.Fatal(err)
	}

	if dst.Durations() != src.Durations() {
		t.Fatalf("durations mismatch: %+v vs %+v", dst.Durations(), src.Durations())
	}
	srcTasks, dstTasks := src.Tasks(), dst.Tasks()
	if len(dstTasks) != len(srcTasks) || dstTasks[0].Text != srcTasks[0].Text {
		t.Fatal("tasks did not survive the round trip")
	}
	if dst.CurrentProject() != src.CurrentProject() {
		t.Fatal("current project did not survive the round trip")
	}
	rec := dst.DailyStats()["2024-01-01"]
	if rec == nil || rec.Count != 1 || rec.Projects["Coding"] != 1 || rec.Hours[9] != 1 {
		t.Fatalf("daily stats did not survive the round trip: %+v", rec)
	}
	if dst.Achievements().TotalPomodoros != 1 {
		t.Fatal("achievements did not survive the round trip")
	}
}

func TestImportPartialDocument(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s)
	originalTasks := s.Tasks()

	// A document carrying only durations.
	path := filepath.Join(t.TempDir(), "partial.json")
	os.WriteFile(path, []byte(`{"durations":{"focus":45,"short_break":9,"long_break":25}}`), 0o644)

	if err := FromJSON(s, path); err != nil {
		t.Fatal(err)
	}
	if s.Durations().Focus != 45 {
		t.Fatalf("present slice should apply, got %+v", s.Durations())
	}
	if len(s.Tasks()) != len(originalTasks) {
		t.Fatal("absent slices must be left untouched")
	}
	if s.CurrentProject() == "" {
		t.Fatal("absent current project must be left untouched")
	}
}

func TestImportMalformedRejectedAtomically(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s)
	before := s.Durations()

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"durations":{"focus":45},`), 0o644)

	if err := FromJSON(s, path); err == nil {
		t.Fatal("malformed document should be rejected")
	}
	if s.Durations() != before {
		t.Fatal("rejected import must not change any state")
	}
}

func TestImportMissingFile(t *testing.T) {
	s := newTestStore(t)
	if err := FromJSON(s, filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestImportedDurationsClamped(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(t.TempDir(), "wild.json")
	os.WriteFile(path, []byte(`{"durations":{"focus":500,"short_break":0,"long_break":15}}`), 0o644)

	if err := FromJSON(s, path); err != nil {
		t.Fatal(err)
	}
	d := s.Durations()
	if d.Focus != store.MaxDurationMinutes || d.ShortBreak != store.MinDurationMinutes {
		t.Fatalf("imported durations should pass the clamp, got %+v", d)
	}
}

// ============================================================
// CSV stats
// ============================================================

func TestStatsToCSV(t *testing.T) {
	days := []stats.DayStat{
		{Date: "2024-01-01", DayRecord: store.DayRecord{Count: 3, Projects: map[string]int{"Writing": 1, "Coding": 2}}},
		{Date: "2024-01-02", DayRecord: store.DayRecord{}},
	}

	path := filepath.Join(t.TempDir(), "stats.csv")
	if err := StatsToCSV(days, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Date,Sessions,Projects" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2024-01-01" || rows[1][1] != "3" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// Projects sorted by name for stable output.
	if rows[1][2] != "Coding:2; Writing:1" {
		t.Fatalf("unexpected projects column: %q", rows[1][2])
	}
	if rows[2][1] != "0" || rows[2][2] != "" {
		t.Fatalf("empty day should render zeros: %v", rows[2])
	}
}

func TestStatsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := StatsToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Date,Sessions,Projects") {
		t.Fatal("header should be written even with no days")
	}
}
