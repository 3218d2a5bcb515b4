package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/stats"
	"github.com/sadopc/podomo/internal/store"
)

type statsView struct {
	store  *store.Store
	ledger *stats.Ledger
	width  int
	height int

	days         []stats.DayStat
	hours        [24]int
	achievements store.AchievementState
	offset       int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsView(s *store.Store, ledger *stats.Ledger) statsView {
	return statsView{
		store:  s,
		ledger: ledger,
		chart:  barchart.New(60, 10),
	}
}

func (v *statsView) setSize(w, h int) {
	v.width = w
	v.height = h
}

type statsDataMsg struct {
	days         []stats.DayStat
	hours        [24]int
	achievements store.AchievementState
}

func (v statsView) refresh() tea.Cmd {
	return func() tea.Msg {
		end := time.Now().AddDate(0, 0, -7*v.offset)
		return statsDataMsg{
			days:         v.ledger.Range(end, 7),
			hours:        v.ledger.HourHistogram(),
			achievements: v.store.Achievements(),
		}
	}
}

func (v statsView) update(msg tea.Msg) (statsView, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		v.days = msg.days
		v.hours = msg.hours
		v.achievements = msg.achievements
		v.buildChart()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			v.offset++
			return v, v.refresh()
		case key.Matches(msg, keys.Right):
			if v.offset > 0 {
				v.offset--
			}
			return v, v.refresh()
		}
	}
	return v, nil
}

func (v *statsView) buildChart() {
	chartWidth := v.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if v.height > 32 {
		chartHeight = 14
	}

	v.chart = barchart.New(chartWidth, chartHeight)

	// Day records key per-project counts by project name.
	projects := v.store.Projects()
	colorOf := make(map[string]lipgloss.Color, len(projects))
	for _, p := range projects {
		colorOf[p.Name] = lipgloss.Color(p.Color)
	}

	var bars []barchart.BarData
	for _, day := range v.days {
		d, _ := time.Parse("2006-01-02", day.Date)
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		names := make([]string, 0, len(day.Projects))
		for name := range day.Projects {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			style := lipgloss.NewStyle().Foreground(colorPrimary)
			if c, ok := colorOf[name]; ok {
				style = lipgloss.NewStyle().Foreground(c)
			}
			values = append(values, barchart.BarValue{
				Name:  name,
				Value: float64(day.Projects[name]),
				Style: style,
			})
		}

		// Sessions without a project still count toward the bar.
		unattributed := day.Count
		for _, n := range day.Projects {
			unattributed -= n
		}
		if unattributed > 0 {
			values = append(values, barchart.BarValue{
				Name:  "No project",
				Value: float64(unattributed),
				Style: lipgloss.NewStyle().Foreground(colorMuted),
			})
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	v.chart.PushAll(bars)
	v.chart.Draw()
}

func (v statsView) view() string {
	w := v.width - 4

	dateLabel := ""
	if len(v.days) > 0 {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s — %s", v.days[0].Date, v.days[len(v.days)-1].Date))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	summary := v.renderSummary()
	histogram := v.renderHourHistogram(w)
	badges := v.renderBadges(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", v.chart.View(), "", summary, "", histogram, "", badges, "", nav,
		),
	)
}

func (v statsView) renderSummary() string {
	a := v.achievements

	weekTotal := 0
	for _, d := range v.days {
		weekTotal += d.Count
	}

	items := []string{
		fmt.Sprintf("%s %d", mutedStyle.Render("This week:"), weekTotal),
		fmt.Sprintf("%s %d", mutedStyle.Render("All time:"), a.TotalPomodoros),
		fmt.Sprintf("%s %s", mutedStyle.Render("Streak:"), accentStyle.Render(fmt.Sprintf("%d day(s)", a.CurrentStreak))),
		fmt.Sprintf("%s %d day(s)", mutedStyle.Render("Longest:"), a.LongestStreak),
	}
	return "  " + strings.Join(items, "    ")
}

// renderHourHistogram shows which hours of the day focus sessions land
// in, as a compact sparkline over all recorded history.
func (v statsView) renderHourHistogram(w int) string {
	peak := 0
	for _, n := range v.hours {
		if n > peak {
			peak = n
		}
	}
	if peak == 0 {
		return mutedStyle.Render("  No sessions recorded yet")
	}

	levels := []rune(" ▁▂▃▄▅▆▇█")
	var cells []string
	for _, n := range v.hours {
		idx := n * (len(levels) - 1) / peak
		cells = append(cells, accentStyle.Render(string(levels[idx])))
	}

	bar := "  " + strings.Join(cells, "")
	scale := mutedStyle.Render("  0h" + strings.Repeat(" ", 8) + "12h" + strings.Repeat(" ", 8) + "23h")
	return titleStyle.Render("  By hour") + "\n" + bar + "\n" + scale
}

func (v statsView) renderBadges(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("  Badges"))

	for _, b := range stats.Catalog {
		if v.achievements.Unlocked(b.ID) {
			rows = append(rows, fmt.Sprintf("  %s %s %s",
				b.Icon, successStyle.Render(b.Name), mutedStyle.Render(b.Description)))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  🔒 %s %s", b.Name, b.Description)))
		}
	}
	return strings.Join(rows, "\n")
}
