// Package audio owns the ambient sound channel map. Actual playback
// sits behind the Player interface; playback failures are swallowed
// and never reach the timer path.
package audio

import "os"

// Sound is one loopable ambient channel.
type Sound struct {
	ID       string
	Label    string
	Filename string
}

// BaseURL is where the channel files are fetched from.
const BaseURL = "https://raw.githubusercontent.com/rafaelmardojai/blanket/master/data/resources/sounds/"

// Sounds is the fixed ambient channel catalog.
var Sounds = []Sound{
	{ID: "rain", Label: "Rain", Filename: "rain.ogg"},
	{ID: "storm", Label: "Storm", Filename: "storm.ogg"},
	{ID: "wind", Label: "Wind", Filename: "wind.ogg"},
	{ID: "waves", Label: "Waves", Filename: "waves.ogg"},
	{ID: "stream", Label: "Stream", Filename: "stream.ogg"},
	{ID: "birds", Label: "Birds", Filename: "birds.ogg"},
	{ID: "summer-night", Label: "Night", Filename: "summer-night.ogg"},
	{ID: "fireplace", Label: "Fire", Filename: "fireplace.ogg"},
	{ID: "coffee-shop", Label: "Cafe", Filename: "coffee-shop.ogg"},
	{ID: "city", Label: "City", Filename: "city.ogg"},
	{ID: "train", Label: "Train", Filename: "train.ogg"},
	{ID: "boat", Label: "Boat", Filename: "boat.ogg"},
	{ID: "white-noise", Label: "White Noise", Filename: "white-noise.ogg"},
	{ID: "pink-noise", Label: "Pink Noise", Filename: "pink-noise.ogg"},
}

// AlarmSounds are the one-shot completion chimes.
var AlarmSounds = []Sound{
	{ID: "bell", Label: "Bell"},
	{ID: "chime", Label: "Chime"},
	{ID: "digital", Label: "Digital"},
}

func SoundByID(id string) (Sound, bool) {
	for _, s := range Sounds {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

// Player is the opaque playback capability. Implementations must be
// fire-and-forget; they never return errors to the caller.
type Player interface {
	Play(soundID string)
	Stop(soundID string)
	SetVolume(soundID string, v float64)
	Alarm(soundID string)
}

// NopPlayer discards everything. Used in tests and headless runs.
type NopPlayer struct{}

func (NopPlayer) Play(string)               {}
func (NopPlayer) Stop(string)               {}
func (NopPlayer) SetVolume(string, float64) {}
func (NopPlayer) Alarm(string)              {}

// BellPlayer rings the terminal bell for alarms and ignores ambient
// channels. The best a TUI can do without an audio backend.
type BellPlayer struct{}

func (BellPlayer) Play(string)               {}
func (BellPlayer) Stop(string)               {}
func (BellPlayer) SetVolume(string, float64) {}
func (BellPlayer) Alarm(string)              { os.Stdout.WriteString("\a") }

// Mixer tracks which channels are active at which volume. It is owned
// by the sound view; the timer only ever asks it for a one-shot alarm.
type Mixer struct {
	player  Player
	active  map[string]bool
	volumes map[string]float64
	muted   bool
	volume  float64 // master default for newly started channels
}

func NewMixer(player Player) *Mixer {
	if player == nil {
		player = NopPlayer{}
	}
	return &Mixer{
		player:  player,
		active:  map[string]bool{},
		volumes: map[string]float64{},
		volume:  0.5,
	}
}

// Toggle flips a channel on or off. Unknown ids are ignored.
func (m *Mixer) Toggle(id string) {
	if _, ok := SoundByID(id); !ok {
		return
	}
	if m.active[id] {
		m.active[id] = false
		m.player.Stop(id)
		return
	}
	m.active[id] = true
	if _, ok := m.volumes[id]; !ok {
		m.volumes[id] = m.volume
	}
	if !m.muted {
		m.player.SetVolume(id, m.volumes[id])
		m.player.Play(id)
	}
}

func (m *Mixer) Active(id string) bool { return m.active[id] }

// ActiveIDs returns the active channels in catalog order.
func (m *Mixer) ActiveIDs() []string {
	var out []string
	for _, s := range Sounds {
		if m.active[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

func (m *Mixer) SetVolume(id string, v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volumes[id] = v
	if m.active[id] && !m.muted {
		m.player.SetVolume(id, v)
	}
}

func (m *Mixer) Volume(id string) float64 {
	if v, ok := m.volumes[id]; ok {
		return v
	}
	return m.volume
}

// SetMasterVolume sets the default volume applied to channels that
// have no explicit level yet.
func (m *Mixer) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
}

// MuteAll silences every active channel without losing which ones are
// on; unmuting restores them.
func (m *Mixer) MuteAll(mute bool) {
	if mute == m.muted {
		return
	}
	m.muted = mute
	for _, id := range m.ActiveIDs() {
		if mute {
			m.player.Stop(id)
		} else {
			m.player.SetVolume(id, m.Volume(id))
			m.player.Play(id)
		}
	}
}

func (m *Mixer) Muted() bool { return m.muted }

// ApplyPreset stops everything and starts exactly the preset channels.
func (m *Mixer) ApplyPreset(sounds []string) {
	for _, id := range m.ActiveIDs() {
		m.active[id] = false
		m.player.Stop(id)
	}
	for _, id := range sounds {
		if !m.active[id] {
			m.Toggle(id)
		}
	}
}

// Alarm fires the one-shot completion chime. Fire-and-forget; no
// handle is retained.
func (m *Mixer) Alarm(soundID string) {
	m.player.Alarm(soundID)
}
