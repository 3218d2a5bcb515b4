package timer

// BreakActivity is one suggested way to spend a break.
type BreakActivity struct {
	Icon    string
	Text    string
	Minutes int
}

// BreakActivities is the fixed suggestion catalog.
var BreakActivities = []BreakActivity{
	{Icon: "🚶", Text: "5 min walk", Minutes: 5},
	{Icon: "💧", Text: "Drink water", Minutes: 2},
	{Icon: "👁️", Text: "Eye exercises", Minutes: 3},
	{Icon: "🧘", Text: "Breathing exercise", Minutes: 5},
	{Icon: "🤸", Text: "Stretching", Minutes: 5},
}

// SuggestActivity rotates through the catalog so consecutive breaks get
// different suggestions. Any integer sequence works as the rotor; the
// UI feeds it the cycle count.
func SuggestActivity(n int) BreakActivity {
	if n < 0 {
		n = -n
	}
	return BreakActivities[n%len(BreakActivities)]
}
