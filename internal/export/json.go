package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/podomo/internal/store"
)

// Bundle is the full backup document: every persisted slice plus the
// export timestamp. On import, only the slices present in the document
// are applied; absent slices are left untouched.
type Bundle struct {
	Durations      *store.Durations        `json:"durations,omitempty"`
	Todos          []store.Task            `json:"todos,omitempty"`
	Projects       []store.Project         `json:"projects,omitempty"`
	DailyStats     store.DailyStats        `json:"dailyStats,omitempty"`
	Achievements   *store.AchievementState `json:"achievements,omitempty"`
	Settings       *store.Settings         `json:"settings,omitempty"`
	CurrentProject *string                 `json:"currentProject,omitempty"`
	QuickNotes     []store.QuickNote       `json:"quickNotes,omitempty"`
	SoundPresets   []store.SoundPreset     `json:"soundPresets,omitempty"`
	ExportDate     string                  `json:"exportDate"`
}

// Snapshot collects every slice from the store.
func Snapshot(s *store.Store) Bundle {
	d := s.Durations()
	a := s.Achievements()
	cfg := s.Settings()
	cur := s.CurrentProject()
	return Bundle{
		Durations:      &d,
		Todos:          s.Tasks(),
		Projects:       s.Projects(),
		DailyStats:     s.DailyStats(),
		Achievements:   &a,
		Settings:       &cfg,
		CurrentProject: &cur,
		QuickNotes:     s.QuickNotes(),
		SoundPresets:   s.SoundPresets(),
		ExportDate:     time.Now().UTC().Format(time.RFC3339),
	}
}

// ToJSON writes the full backup document to path.
func ToJSON(s *store.Store, path string) error {
	data, err := json.MarshalIndent(Snapshot(s), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// Apply merges the slices present in the bundle into the store. The
// document was already parsed in full, so a malformed file never gets
// this far and the store is never left half-applied by bad input.
func Apply(s *store.Store, b Bundle) error {
	if b.Durations != nil {
		if err := s.SaveDurations(*b.Durations); err != nil {
			return err
		}
	}
	if b.Todos != nil {
		if err := s.SaveTasks(b.Todos); err != nil {
			return err
		}
	}
	if b.Projects != nil {
		if err := s.SaveProjects(b.Projects); err != nil {
			return err
		}
	}
	if b.DailyStats != nil {
		if err := s.SaveDailyStats(b.DailyStats); err != nil {
			return err
		}
	}
	if b.Achievements != nil {
		if err := s.SaveAchievements(*b.Achievements); err != nil {
			return err
		}
	}
	if b.Settings != nil {
		if err := s.SaveSettings(*b.Settings); err != nil {
			return err
		}
	}
	if b.CurrentProject != nil {
		if err := s.SetCurrentProject(*b.CurrentProject); err != nil {
			return err
		}
	}
	if b.QuickNotes != nil {
		if err := s.SaveQuickNotes(b.QuickNotes); err != nil {
			return err
		}
	}
	if b.SoundPresets != nil {
		if err := s.SaveSoundPresets(b.SoundPresets); err != nil {
			return err
		}
	}
	return nil
}

// FromJSON reads a backup document and merges it into the store. An
// unreadable or malformed file is rejected with the state unchanged.
func FromJSON(s *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("invalid backup format: %w", err)
	}
	return Apply(s, b)
}
