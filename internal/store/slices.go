package store

// Typed accessors for each persisted slice. Readers fall back to
// documented defaults when nothing is stored or the blob is corrupt.

func (s *Store) Durations() Durations {
	d := DefaultDurations()
	s.loadSlice(KeyDurations, &d)
	return d.Clamped()
}

func (s *Store) SaveDurations(d Durations) error {
	return s.saveSlice(KeyDurations, d.Clamped())
}

func (s *Store) DailyStats() DailyStats {
	stats := DailyStats{}
	s.loadSlice(KeyDailyStats, &stats)
	return stats
}

func (s *Store) SaveDailyStats(stats DailyStats) error {
	return s.saveSlice(KeyDailyStats, stats)
}

func (s *Store) Achievements() AchievementState {
	var a AchievementState
	s.loadSlice(KeyAchievements, &a)
	return a
}

func (s *Store) SaveAchievements(a AchievementState) error {
	return s.saveSlice(KeyAchievements, a)
}

func (s *Store) Settings() Settings {
	cfg := DefaultSettings()
	s.loadSlice(KeySettings, &cfg)
	return cfg.Normalized()
}

func (s *Store) SaveSettings(cfg Settings) error {
	return s.saveSlice(KeySettings, cfg.Normalized())
}

// CurrentProject returns the active project id, or "" when none is
// selected. The reference is stored by id so a deleted project simply
// resolves to nothing after reload.
func (s *Store) CurrentProject() string {
	var id string
	s.loadSlice(KeyCurrentProject, &id)
	return id
}

func (s *Store) SetCurrentProject(id string) error {
	return s.saveSlice(KeyCurrentProject, id)
}

// CurrentTask returns the active task id, or "" when none is selected.
func (s *Store) CurrentTask() string {
	var id string
	s.loadSlice(KeyCurrentTask, &id)
	return id
}

func (s *Store) SetCurrentTask(id string) error {
	return s.saveSlice(KeyCurrentTask, id)
}

func (s *Store) QuickNotes() []QuickNote {
	var notes []QuickNote
	s.loadSlice(KeyQuickNotes, &notes)
	return notes
}

func (s *Store) SaveQuickNotes(notes []QuickNote) error {
	return s.saveSlice(KeyQuickNotes, notes)
}

func (s *Store) SoundPresets() []SoundPreset {
	presets := DefaultSoundPresets()
	s.loadSlice(KeySoundPresets, &presets)
	return presets
}

func (s *Store) SaveSoundPresets(presets []SoundPreset) error {
	return s.saveSlice(KeySoundPresets, presets)
}
