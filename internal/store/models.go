package store

import "time"

// Mode identifies which countdown a session runs.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes lists every valid mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

func (m Mode) Valid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	}
	return string(m)
}

const (
	// Duration bounds in minutes, enforced at the write boundary.
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
)

// Durations maps each mode to its countdown length in minutes.
type Durations struct {
	Focus      int `json:"focus"`
	ShortBreak int `json:"short_break"`
	LongBreak  int `json:"long_break"`
}

func DefaultDurations() Durations {
	return Durations{Focus: 25, ShortBreak: 5, LongBreak: 15}
}

// Minutes returns the configured minutes for a mode.
func (d Durations) Minutes(m Mode) int {
	switch m {
	case ModeShortBreak:
		return d.ShortBreak
	case ModeLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// Seconds returns the full countdown length for a mode.
func (d Durations) Seconds(m Mode) int {
	return d.Minutes(m) * 60
}

// Clamped returns a copy with every value forced into the valid range.
func (d Durations) Clamped() Durations {
	clamp := func(v int) int {
		if v < MinDurationMinutes {
			return MinDurationMinutes
		}
		if v > MaxDurationMinutes {
			return MaxDurationMinutes
		}
		return v
	}
	return Durations{
		Focus:      clamp(d.Focus),
		ShortBreak: clamp(d.ShortBreak),
		LongBreak:  clamp(d.LongBreak),
	}
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"projectId"`
	Text               string    `json:"text"`
	Completed          bool      `json:"completed"`
	Priority           Priority  `json:"priority"`
	EstimatedPomodoros int       `json:"estimatedPomodoros"`
	CompletedPomodoros int       `json:"completedPomodoros"`
	Subtasks           []Subtask `json:"subtasks,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DayRecord aggregates completed focus sessions for one calendar day.
type DayRecord struct {
	Count    int            `json:"count"`
	Projects map[string]int `json:"projects,omitempty"`
	Hours    map[int]int    `json:"hours,omitempty"`
}

// DailyStats is keyed by local date, YYYY-MM-DD.
type DailyStats map[string]*DayRecord

// AchievementState holds the cumulative counters the badge predicates
// are evaluated against. Unlocked badges never revert.
type AchievementState struct {
	UnlockedBadges    []string `json:"unlockedBadges"`
	TotalPomodoros    int      `json:"totalPomodoros"`
	CurrentStreak     int      `json:"currentStreak"`
	LongestStreak     int      `json:"longestStreak"`
	LastActiveDate    string   `json:"lastActiveDate,omitempty"`
	EarlyBird         bool     `json:"earlyBird"`
	NightOwl          bool     `json:"nightOwl"`
	DailyGoalsReached int      `json:"dailyGoalsReached"`
}

// Unlocked reports whether a badge id is already in the unlocked set.
func (a AchievementState) Unlocked(id string) bool {
	for _, b := range a.UnlockedBadges {
		if b == id {
			return true
		}
	}
	return false
}

type Settings struct {
	AutoStartBreak    bool    `json:"autoStartBreak"`
	AutoStartFocus    bool    `json:"autoStartFocus"`
	LongBreakInterval int     `json:"longBreakInterval"`
	DailyGoal         int     `json:"dailyGoal"`
	Notifications     bool    `json:"notifications"`
	AlarmSound        string  `json:"alarmSound"`
	Volume            float64 `json:"volume"`
	Theme             string  `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		LongBreakInterval: 4,
		DailyGoal:         8,
		Notifications:     true,
		AlarmSound:        "bell",
		Volume:            0.5,
		Theme:             "default",
	}
}

// Normalized forces settings values into their valid ranges.
func (s Settings) Normalized() Settings {
	if s.LongBreakInterval < 1 {
		s.LongBreakInterval = 1
	}
	if s.DailyGoal < 1 {
		s.DailyGoal = 1
	}
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 1 {
		s.Volume = 1
	}
	if s.AlarmSound == "" {
		s.AlarmSound = "bell"
	}
	if s.Theme == "" {
		s.Theme = "default"
	}
	return s
}

type QuickNote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type SoundPreset struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Sounds []string `json:"sounds"`
}

func DefaultSoundPresets() []SoundPreset {
	return []SoundPreset{
		{ID: "preset-1", Name: "Rainy Cafe", Sounds: []string{"rain", "coffee-shop"}},
		{ID: "preset-2", Name: "Deep Focus", Sounds: []string{"white-noise"}},
		{ID: "preset-3", Name: "Nature", Sounds: []string{"birds", "stream"}},
		{ID: "preset-4", Name: "Night Storm", Sounds: []string{"storm", "rain"}},
	}
}
