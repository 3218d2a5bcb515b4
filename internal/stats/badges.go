package stats

import "github.com/sadopc/podomo/internal/store"

// Badge pairs an id with the predicate that unlocks it. Predicates are
// pure functions over an achievement snapshot; once a badge is
// unlocked it stays unlocked regardless of later counter values.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   func(store.AchievementState) bool
}

// Catalog is the fixed badge set.
var Catalog = []Badge{
	{
		ID: "first_pomodoro", Name: "First Step", Icon: "🎯",
		Description: "Complete your first pomodoro",
		Condition:   func(a store.AchievementState) bool { return a.TotalPomodoros >= 1 },
	},
	{
		ID: "ten_pomodoros", Name: "Getting Started", Icon: "🌱",
		Description: "Complete 10 pomodoros",
		Condition:   func(a store.AchievementState) bool { return a.TotalPomodoros >= 10 },
	},
	{
		ID: "fifty_pomodoros", Name: "Focused Mind", Icon: "🧠",
		Description: "Complete 50 pomodoros",
		Condition:   func(a store.AchievementState) bool { return a.TotalPomodoros >= 50 },
	},
	{
		ID: "hundred_pomodoros", Name: "Centurion", Icon: "💯",
		Description: "Complete 100 pomodoros",
		Condition:   func(a store.AchievementState) bool { return a.TotalPomodoros >= 100 },
	},
	{
		ID: "streak_3", Name: "On Fire", Icon: "🔥",
		Description: "3 day streak",
		Condition:   func(a store.AchievementState) bool { return a.CurrentStreak >= 3 },
	},
	{
		ID: "streak_7", Name: "Week Warrior", Icon: "⚡",
		Description: "7 day streak",
		Condition:   func(a store.AchievementState) bool { return a.CurrentStreak >= 7 },
	},
	{
		ID: "streak_30", Name: "Monthly Master", Icon: "👑",
		Description: "30 day streak",
		Condition:   func(a store.AchievementState) bool { return a.CurrentStreak >= 30 },
	},
	{
		ID: "early_bird", Name: "Early Bird", Icon: "🐦",
		Description: "Complete a pomodoro before 8 AM",
		Condition:   func(a store.AchievementState) bool { return a.EarlyBird },
	},
	{
		ID: "night_owl", Name: "Night Owl", Icon: "🦉",
		Description: "Complete a pomodoro after 10 PM",
		Condition:   func(a store.AchievementState) bool { return a.NightOwl },
	},
	{
		ID: "daily_goal", Name: "Goal Crusher", Icon: "🏆",
		Description: "Reach your daily goal 5 times",
		Condition:   func(a store.AchievementState) bool { return a.DailyGoalsReached >= 5 },
	},
}

// Evaluate returns the badges whose condition holds but that are not
// yet in the unlocked set. Pure: the same state yields the same
// result, and it never proposes removing a badge.
func Evaluate(a store.AchievementState) []Badge {
	var newly []Badge
	for _, b := range Catalog {
		if a.Unlocked(b.ID) {
			continue
		}
		if b.Condition(a) {
			newly = append(newly, b)
		}
	}
	return newly
}
