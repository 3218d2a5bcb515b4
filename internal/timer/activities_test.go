package timer

import "testing"

func TestBreakActivitiesCatalog(t *testing.T) {
	if len(BreakActivities) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(BreakActivities))
	}
	seen := map[string]bool{}
	for _, a := range BreakActivities {
		if a.Icon == "" || a.Text == "" || a.Minutes < 1 {
			t.Fatalf("incomplete activity: %+v", a)
		}
		if seen[a.Text] {
			t.Fatalf("duplicate activity %q", a.Text)
		}
		seen[a.Text] = true
	}
}

func TestSuggestActivityRotates(t *testing.T) {
	for n := 0; n < 12; n++ {
		want := BreakActivities[n%len(BreakActivities)]
		if got := SuggestActivity(n); got != want {
			t.Fatalf("SuggestActivity(%d) = %+v, want %+v", n, got, want)
		}
	}
	// Negative input must not panic the view.
	if got := SuggestActivity(-3); got != BreakActivities[3] {
		t.Fatalf("SuggestActivity(-3) = %+v", got)
	}
}
