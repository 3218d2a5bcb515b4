// Package stats maintains the day-keyed focus aggregates, the streak
// bookkeeping and the badge catalog.
package stats

import (
	"time"

	"github.com/sadopc/podomo/internal/store"
)

const dateLayout = "2006-01-02"

// Ledger wraps the persisted daily-stats and achievement slices.
type Ledger struct {
	store *store.Store
}

func NewLedger(s *store.Store) *Ledger {
	return &Ledger{store: s}
}

// RecordFocusCompletion increments the day record for date: the total
// count, the per-project count (when a project is set) and the
// hour-of-day bucket. Every call increments; the caller invokes it
// exactly once per genuine completion. The updated record is returned
// so the caller can check the daily goal without a re-read.
func (l *Ledger) RecordFocusCompletion(date, project string, hour int) (*store.DayRecord, error) {
	stats := l.store.DailyStats()
	rec := stats[date]
	if rec == nil {
		rec = &store.DayRecord{}
		stats[date] = rec
	}
	rec.Count++
	if project != "" {
		if rec.Projects == nil {
			rec.Projects = map[string]int{}
		}
		rec.Projects[project]++
	}
	if hour >= 0 && hour <= 23 {
		if rec.Hours == nil {
			rec.Hours = map[int]int{}
		}
		rec.Hours[hour]++
	}
	if err := l.store.SaveDailyStats(stats); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateStreak applies one focus completion on the given day to the
// streak counters. Only the first completion of a calendar day
// advances the streak; later completions the same day leave
// currentStreak untouched. longestStreak is a running maximum.
func UpdateStreak(a *store.AchievementState, today string) {
	if a.LastActiveDate == today {
		return
	}
	if a.LastActiveDate == yesterdayOf(today) {
		a.CurrentStreak++
	} else {
		a.CurrentStreak = 1
	}
	if a.CurrentStreak > a.LongestStreak {
		a.LongestStreak = a.CurrentStreak
	}
	a.LastActiveDate = today
}

func yesterdayOf(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}

// ApplyFocusCompletion folds one completed focus session into the
// achievement state: total count, streak, time-of-day flags, and the
// daily-goal counter (incremented when the day's count first reaches
// the goal). Newly unlocked badges are merged into the state and
// returned; the unlocked set never shrinks.
func (l *Ledger) ApplyFocusCompletion(date string, hour, dayCount, dailyGoal int) ([]Badge, error) {
	a := l.store.Achievements()

	a.TotalPomodoros++
	UpdateStreak(&a, date)
	if hour < 8 {
		a.EarlyBird = true
	}
	if hour >= 22 {
		a.NightOwl = true
	}
	if dailyGoal > 0 && dayCount == dailyGoal {
		a.DailyGoalsReached++
	}

	newly := Evaluate(a)
	for _, b := range newly {
		a.UnlockedBadges = append(a.UnlockedBadges, b.ID)
	}

	if err := l.store.SaveAchievements(a); err != nil {
		return nil, err
	}
	return newly, nil
}

// DayStat is a DayRecord paired with its date key.
type DayStat struct {
	Date string
	store.DayRecord
}

// Range returns one record per day for the `days` days ending at end,
// oldest first, synthesizing zero records for days with no entry.
func (l *Ledger) Range(end time.Time, days int) []DayStat {
	stats := l.store.DailyStats()
	out := make([]DayStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format(dateLayout)
		ds := DayStat{Date: date}
		if rec := stats[date]; rec != nil {
			ds.DayRecord = *rec
		}
		out = append(out, ds)
	}
	return out
}

// HourHistogram sums the hour buckets across every recorded day.
func (l *Ledger) HourHistogram() [24]int {
	var hist [24]int
	for _, rec := range l.store.DailyStats() {
		for h, n := range rec.Hours {
			if h >= 0 && h <= 23 {
				hist[h] += n
			}
		}
	}
	return hist
}
