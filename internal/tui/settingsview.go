package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/audio"
	"github.com/sadopc/podomo/internal/store"
)

type settingsView struct {
	store  *store.Store
	width  int
	height int

	durations store.Durations
	settings  store.Settings

	formActive bool
	form       *huh.Form

	focusVal     *string
	shortVal     *string
	longVal      *string
	intervalVal  *string
	goalVal      *string
	autoBreakVal *bool
	autoFocusVal *bool
	notifyVal    *bool
	alarmVal     *string
	volumeVal    *string
}

func newSettingsView(s *store.Store) settingsView {
	focus, short, long, interval, goal, alarm, volume := "", "", "", "", "", "", ""
	autoBreak, autoFocus, notify := false, false, false
	return settingsView{
		store:        s,
		focusVal:     &focus,
		shortVal:     &short,
		longVal:      &long,
		intervalVal:  &interval,
		goalVal:      &goal,
		autoBreakVal: &autoBreak,
		autoFocusVal: &autoFocus,
		notifyVal:    &notify,
		alarmVal:     &alarm,
		volumeVal:    &volume,
	}
}

func (v *settingsView) setSize(w, h int) {
	v.width = w
	v.height = h
}

type settingsDataMsg struct {
	durations store.Durations
	settings  store.Settings
}

func (v settingsView) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			durations: v.store.Durations(),
			settings:  v.store.Settings(),
		}
	}
}

func (v settingsView) update(msg tea.Msg) (settingsView, tea.Cmd) {
	if v.formActive && v.form != nil {
		return v.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		v.durations = msg.durations
		v.settings = msg.settings
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return v.showForm()
		}
	}
	return v, nil
}

// showForm opens the editing form seeded from the stored values.
func (v settingsView) showForm() (settingsView, tea.Cmd) {
	d := v.store.Durations()
	cfg := v.store.Settings()

	*v.focusVal = strconv.Itoa(d.Focus)
	*v.shortVal = strconv.Itoa(d.ShortBreak)
	*v.longVal = strconv.Itoa(d.LongBreak)
	*v.intervalVal = strconv.Itoa(cfg.LongBreakInterval)
	*v.goalVal = strconv.Itoa(cfg.DailyGoal)
	*v.autoBreakVal = cfg.AutoStartBreak
	*v.autoFocusVal = cfg.AutoStartFocus
	*v.notifyVal = cfg.Notifications
	*v.alarmVal = cfg.AlarmSound
	*v.volumeVal = strconv.FormatFloat(cfg.Volume, 'f', 1, 64)

	minutes := func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < store.MinDurationMinutes || n > store.MaxDurationMinutes {
			return fmt.Errorf("must be %d-%d minutes", store.MinDurationMinutes, store.MaxDurationMinutes)
		}
		return nil
	}
	positive := func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return fmt.Errorf("must be at least 1")
		}
		return nil
	}
	fraction := func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("must be between 0.0 and 1.0")
		}
		return nil
	}

	var alarmOpts []huh.Option[string]
	for _, a := range audio.AlarmSounds {
		alarmOpts = append(alarmOpts, huh.NewOption(a.Label, a.ID))
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (minutes)").Value(v.focusVal).Validate(minutes),
			huh.NewInput().Title("Short break (minutes)").Value(v.shortVal).Validate(minutes),
			huh.NewInput().Title("Long break (minutes)").Value(v.longVal).Validate(minutes),
			huh.NewInput().Title("Focus sessions per long break").Value(v.intervalVal).Validate(positive),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewConfirm().Title("Auto-start breaks").Value(v.autoBreakVal),
			huh.NewConfirm().Title("Auto-start focus").Value(v.autoFocusVal),
			huh.NewInput().Title("Daily goal (sessions)").Value(v.goalVal).Validate(positive),
			huh.NewConfirm().Title("Completion notifications").Value(v.notifyVal),
			huh.NewSelect[string]().Title("Alarm sound").Options(alarmOpts...).Value(v.alarmVal),
			huh.NewInput().Title("Master volume (0-1)").Value(v.volumeVal).Validate(fraction),
		).Title("Behavior"),
	).WithShowHelp(true).WithShowErrors(true)

	v.formActive = true
	return v, v.form.Init()
}

func (v settingsView) updateForm(msg tea.Msg) (settingsView, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		v.formActive = false
		v.form = nil
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.formActive = false
		v.form = nil
		return v.save()
	}
	return v, cmd
}

func (v settingsView) save() (settingsView, tea.Cmd) {
	focus, _ := strconv.Atoi(*v.focusVal)
	short, _ := strconv.Atoi(*v.shortVal)
	long, _ := strconv.Atoi(*v.longVal)
	interval, _ := strconv.Atoi(*v.intervalVal)
	goal, _ := strconv.Atoi(*v.goalVal)

	if err := v.store.SaveDurations(store.Durations{Focus: focus, ShortBreak: short, LongBreak: long}); err != nil {
		return v, errStatus(err)
	}

	cfg := v.store.Settings()
	cfg.LongBreakInterval = interval
	cfg.DailyGoal = goal
	cfg.AutoStartBreak = *v.autoBreakVal
	cfg.AutoStartFocus = *v.autoFocusVal
	cfg.Notifications = *v.notifyVal
	cfg.AlarmSound = *v.alarmVal
	if vol, err := strconv.ParseFloat(*v.volumeVal, 64); err == nil {
		cfg.Volume = vol
	}
	if err := v.store.SaveSettings(cfg); err != nil {
		return v, errStatus(err)
	}

	return v, tea.Batch(
		v.refresh(),
		func() tea.Msg { return settingsSavedMsg{} },
	)
}

func (v settingsView) view() string {
	w := v.width - 4

	if v.formActive && v.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("Settings"), "", v.form.View(),
			),
		)
	}

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	alarmLabel := v.settings.AlarmSound
	for _, a := range audio.AlarmSounds {
		if a.ID == v.settings.AlarmSound {
			alarmLabel = a.Label
		}
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %s %d min", mutedStyle.Render("Focus:             "), v.durations.Focus),
		fmt.Sprintf("  %s %d min", mutedStyle.Render("Short break:       "), v.durations.ShortBreak),
		fmt.Sprintf("  %s %d min", mutedStyle.Render("Long break:        "), v.durations.LongBreak),
		fmt.Sprintf("  %s every %d focus sessions", mutedStyle.Render("Long break:        "), v.settings.LongBreakInterval),
		"",
		fmt.Sprintf("  %s %s", mutedStyle.Render("Auto-start breaks: "), onOff(v.settings.AutoStartBreak)),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Auto-start focus:  "), onOff(v.settings.AutoStartFocus)),
		fmt.Sprintf("  %s %d sessions", mutedStyle.Render("Daily goal:        "), v.settings.DailyGoal),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Notifications:     "), onOff(v.settings.Notifications)),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Alarm sound:       "), alarmLabel),
		fmt.Sprintf("  %s %.1f", mutedStyle.Render("Master volume:     "), v.settings.Volume),
		"",
		mutedStyle.Render("  enter: edit"),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
