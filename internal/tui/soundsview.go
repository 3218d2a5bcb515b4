package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/audio"
	"github.com/sadopc/podomo/internal/store"
)

const soundColumns = 2

type soundsView struct {
	store  *store.Store
	mixer  *audio.Mixer
	width  int
	height int

	cursor  int
	presets []store.SoundPreset
	preset  int // index of the last applied preset, -1 when none
}

func newSoundsView(s *store.Store, mixer *audio.Mixer) soundsView {
	return soundsView{
		store:   s,
		mixer:   mixer,
		presets: s.SoundPresets(),
		preset:  -1,
	}
}

func (v *soundsView) setSize(w, h int) {
	v.width = w
	v.height = h
}

func (v soundsView) update(msg tea.Msg) (soundsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			v.cursor = clampCursor(v.cursor-soundColumns, len(audio.Sounds))
		case key.Matches(msg, keys.Down):
			v.cursor = clampCursor(v.cursor+soundColumns, len(audio.Sounds))
		case key.Matches(msg, keys.Left):
			v.cursor = clampCursor(v.cursor-1, len(audio.Sounds))
		case key.Matches(msg, keys.Right):
			v.cursor = clampCursor(v.cursor+1, len(audio.Sounds))
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Toggle):
			v.preset = -1
			v.mixer.Toggle(audio.Sounds[v.cursor].ID)
		case key.Matches(msg, keys.VolumeUp):
			id := audio.Sounds[v.cursor].ID
			v.mixer.SetVolume(id, v.mixer.Volume(id)+0.1)
		case key.Matches(msg, keys.VolumeDown):
			id := audio.Sounds[v.cursor].ID
			v.mixer.SetVolume(id, v.mixer.Volume(id)-0.1)
		case key.Matches(msg, keys.Mute):
			v.mixer.MuteAll(!v.mixer.Muted())
		case key.Matches(msg, keys.Preset):
			return v.cyclePreset()
		}
	}
	return v, nil
}

// cyclePreset applies the next saved preset, replacing the current
// channel selection.
func (v soundsView) cyclePreset() (soundsView, tea.Cmd) {
	if len(v.presets) == 0 {
		return v, textStatus("No sound presets saved")
	}
	v.preset = (v.preset + 1) % len(v.presets)
	p := v.presets[v.preset]
	v.mixer.ApplyPreset(p.Sounds)
	return v, textStatus("Preset: " + p.Name)
}

func (v soundsView) view() string {
	w := v.width - 4

	header := titleStyle.Render("Ambient Sounds")
	if v.mixer.Muted() {
		header += "  " + warningStyle.Render("[MUTED]")
	}

	cellWidth := (w - 8) / soundColumns
	if cellWidth < 24 {
		cellWidth = 24
	}

	var rows []string
	for i := 0; i < len(audio.Sounds); i += soundColumns {
		var cells []string
		for j := i; j < i+soundColumns && j < len(audio.Sounds); j++ {
			cells = append(cells, v.renderSoundCell(j, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := strings.Join(rows, "\n")

	presetLine := v.renderPresetLine()
	controls := mutedStyle.Render("  enter/x: toggle  +/-: volume  m: mute all  p: preset")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", presetLine, "", controls),
	)
}

func (v soundsView) renderSoundCell(i, width int) string {
	s := audio.Sounds[i]
	active := v.mixer.Active(s.ID)

	marker := mutedStyle.Render("○")
	if active {
		marker = successStyle.Render("●")
	}

	label := s.Label
	style := normalItemStyle
	cursor := "  "
	if i == v.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	volume := ""
	if active {
		volume = " " + renderVolumeBar(v.mixer.Volume(s.ID))
	}

	cell := fmt.Sprintf("%s%s %s%s", cursor, marker, style.Render(label), volume)
	return lipgloss.NewStyle().Width(width).Render(cell)
}

// renderVolumeBar shows a 0..1 level as a ten-segment bar.
func renderVolumeBar(v float64) string {
	filled := int(v*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	return accentStyle.Render(strings.Repeat("▰", filled)) +
		mutedStyle.Render(strings.Repeat("▱", 10-filled))
}

func (v soundsView) renderPresetLine() string {
	if len(v.presets) == 0 {
		return ""
	}
	var items []string
	for i, p := range v.presets {
		if i == v.preset {
			items = append(items, selectedItemStyle.Render(p.Name))
		} else {
			items = append(items, mutedStyle.Render(p.Name))
		}
	}
	return "  " + mutedStyle.Render("Presets: ") + strings.Join(items, mutedStyle.Render("  ·  "))
}
