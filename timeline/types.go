package timeline

import "reelcut/config"

// Clip is a non-destructive reference to a source media asset. Trimming moves
// the visible window [TrimIn, TrimOut) without touching the asset itself.
type Clip struct {
	ID             string  `json:"id"`
	Source         string  `json:"source"`
	SourceDuration float64 `json:"source_duration"`
	TrimIn         float64 `json:"trim_in"`
	TrimOut        float64 `json:"trim_out"`
}

// VisibleDuration is the portion of the source shown on the timeline.
func (c Clip) VisibleDuration() float64 {
	d := c.TrimOut - c.TrimIn
	if d < 0 {
		return 0
	}
	return d
}

// Placement binds a clip to its position on the single timeline track.
// Start is always the running sum of prior visible durations; it is
// recomputed on every structural change rather than patched in place.
type Placement struct {
	ClipID string  `json:"clip_id"`
	Start  float64 `json:"start"`
}

// MusicTrack is the optional background audio laid under the whole timeline.
type MusicTrack struct {
	Source string  `json:"source"`
	Offset float64 `json:"offset"`
	Gain   float64 `json:"gain"`
}

// ExportSettings configures the output encode.
type ExportSettings struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FPS         int    `json:"fps"`
	BitrateKbps int    `json:"bitrate_kbps"`
	Format      string `json:"format"`
}

// DefaultExportSettings returns the stock 720p30 MP4 target.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Width:       config.DefaultExportWidth,
		Height:      config.DefaultExportHeight,
		FPS:         config.DefaultExportFPS,
		BitrateKbps: config.DefaultExportBitrate,
		Format:      config.DefaultExportFormat,
	}
}

// State is the full editor state. It is the unit of history snapshots,
// export input, and persistence.
type State struct {
	Clips      []Clip         `json:"clips"`
	Placements []Placement    `json:"placements"`
	Music      *MusicTrack    `json:"music,omitempty"`
	Playhead   float64        `json:"playhead"`
	IsPlaying  bool           `json:"is_playing"`
	PxPerSec   float64        `json:"px_per_sec"`
	Export     ExportSettings `json:"export"`
}

// Clone deep-copies the state so snapshots cannot alias live slices.
func (s State) Clone() State {
	out := s
	out.Clips = append([]Clip(nil), s.Clips...)
	out.Placements = append([]Placement(nil), s.Placements...)
	if s.Music != nil {
		m := *s.Music
		out.Music = &m
	}
	return out
}

// clipByID returns the clip and whether it exists.
func (s State) clipByID(id string) (Clip, bool) {
	for _, c := range s.Clips {
		if c.ID == id {
			return c, true
		}
	}
	return Clip{}, false
}
