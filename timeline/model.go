package timeline

import (
	"reelcut/config"
)

// Editor is the single source of truth for one timeline. All mutations are
// synchronous; interactive surfaces only read derived values and call the
// operations below. Operations either clamp/no-op (continuous gestures) or
// return a ValidationError (structural integrity breaches) — nothing else.
type Editor struct {
	state State
	undo  []State
	redo  []State
}

// NewEditor returns an empty editor with default zoom and export settings.
func NewEditor() *Editor {
	return &Editor{
		state: State{
			PxPerSec: 100,
			Export:   DefaultExportSettings(),
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (e *Editor) Snapshot() State { return e.state.Clone() }

// Restore replaces the whole state, e.g. after loading a project. History
// is reset; restored state is a fresh baseline, not an undoable edit.
func (e *Editor) Restore(s State) {
	e.state = s.Clone()
	if e.state.PxPerSec == 0 {
		e.state.PxPerSec = 100
	}
	e.undo = nil
	e.redo = nil
	e.recompute()
}

// Read accessors. Slices are copied so callers cannot mutate model state.

func (e *Editor) Clips() []Clip             { return append([]Clip(nil), e.state.Clips...) }
func (e *Editor) Placements() []Placement   { return append([]Placement(nil), e.state.Placements...) }
func (e *Editor) Playhead() float64         { return e.state.Playhead }
func (e *Editor) IsPlaying() bool           { return e.state.IsPlaying }
func (e *Editor) PxPerSec() float64         { return e.state.PxPerSec }
func (e *Editor) ExportSettings() ExportSettings { return e.state.Export }

func (e *Editor) Music() *MusicTrack {
	if e.state.Music == nil {
		return nil
	}
	m := *e.state.Music
	return &m
}

// TotalDuration is the timeline length in seconds.
func (e *Editor) TotalDuration() float64 {
	return TotalDuration(e.state.Clips, e.state.Placements)
}

// ActiveAt resolves the clip under t, if any.
func (e *Editor) ActiveAt(t float64) (ActiveClip, bool) {
	return ActiveClipAt(e.state.Clips, e.state.Placements, t)
}

// Layout returns the pixel-space blocks at the current zoom.
func (e *Editor) Layout() []LayoutItem {
	return Layout(e.state.Clips, e.state.Placements, e.state.PxPerSec)
}

// AddClip appends a clip at the end of the track. Bounds are validated, not
// clamped: adding is a discrete command, unlike trimming.
func (e *Editor) AddClip(c Clip) error {
	if c.ID == "" {
		return validationErrorf("add clip", "missing clip id")
	}
	if _, exists := e.state.clipByID(c.ID); exists {
		return validationErrorf("add clip", "duplicate clip id %q", c.ID)
	}
	if c.SourceDuration <= 0 {
		return validationErrorf("add clip", "source duration must be positive, got %v", c.SourceDuration)
	}
	if c.TrimIn < 0 || c.TrimOut > c.SourceDuration {
		return validationErrorf("add clip", "trim window [%v, %v] outside source duration %v", c.TrimIn, c.TrimOut, c.SourceDuration)
	}
	if c.TrimOut-c.TrimIn < config.MinClipSeconds {
		return validationErrorf("add clip", "visible duration below %vs floor", config.MinClipSeconds)
	}

	e.pushHistory()
	start := e.TotalDuration()
	e.state.Clips = append(e.state.Clips, c)
	e.state.Placements = append(e.state.Placements, Placement{ClipID: c.ID, Start: start})
	return nil
}

// RemoveClip deletes the clip and its placement; later placements shift left.
// Removing an unknown id is a no-op.
func (e *Editor) RemoveClip(id string) {
	if _, ok := e.state.clipByID(id); !ok {
		return
	}
	e.pushHistory()
	clips := e.state.Clips[:0]
	for _, c := range e.state.Clips {
		if c.ID != id {
			clips = append(clips, c)
		}
	}
	e.state.Clips = clips
	placements := e.state.Placements[:0]
	for _, p := range e.state.Placements {
		if p.ClipID != id {
			placements = append(placements, p)
		}
	}
	e.state.Placements = placements
	e.recompute()
}

// Reorder rebuilds placements from a full permutation of the current clip
// ids. Anything other than an exact permutation is rejected.
func (e *Editor) Reorder(orderedIDs []string) error {
	if len(orderedIDs) != len(e.state.Clips) {
		return validationErrorf("reorder", "got %d ids, timeline has %d clips", len(orderedIDs), len(e.state.Clips))
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return validationErrorf("reorder", "duplicate clip id %q", id)
		}
		if _, ok := e.state.clipByID(id); !ok {
			return validationErrorf("reorder", "unknown clip id %q", id)
		}
		seen[id] = true
	}

	e.pushHistory()
	placements := make([]Placement, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		placements = append(placements, Placement{ClipID: id})
	}
	e.state.Placements = placements
	e.recompute()
	return nil
}

// TrimIn moves a clip's in-point. The value is snapped and clamped, never
// rejected: trimming is a continuous gesture and must not produce errors
// mid-drag. Unknown ids are a no-op.
func (e *Editor) TrimIn(id string, newIn float64) {
	idx := e.clipIndex(id)
	if idx < 0 {
		return
	}
	c := e.state.Clips[idx]
	v := Snap(newIn, config.SnapStepSeconds)
	v = clamp(v, 0, c.TrimOut-config.MinClipSeconds)
	if v == c.TrimIn {
		return
	}
	e.pushHistory()
	e.state.Clips[idx].TrimIn = v
	e.recompute()
}

// TrimOut moves a clip's out-point with the same snap-and-clamp semantics.
func (e *Editor) TrimOut(id string, newOut float64) {
	idx := e.clipIndex(id)
	if idx < 0 {
		return
	}
	c := e.state.Clips[idx]
	v := Snap(newOut, config.SnapStepSeconds)
	v = clamp(v, c.TrimIn+config.MinClipSeconds, c.SourceDuration)
	if v == c.TrimOut {
		return
	}
	e.pushHistory()
	e.state.Clips[idx].TrimOut = v
	e.recompute()
}

// SplitAt cuts the clip under t into two children sharing the same source.
// Outside any clip, or within the trim floor of either edge, it is a no-op:
// a split must never create a degenerate clip.
func (e *Editor) SplitAt(t float64) {
	active, ok := e.ActiveAt(t)
	if !ok {
		return
	}
	local := active.LocalTime
	if local < config.MinClipSeconds || active.Clip.VisibleDuration()-local < config.MinClipSeconds {
		return
	}

	e.pushHistory()
	cut := active.Clip.TrimIn + local
	left := Clip{
		ID:             newClipID(),
		Source:         active.Clip.Source,
		SourceDuration: active.Clip.SourceDuration,
		TrimIn:         active.Clip.TrimIn,
		TrimOut:        cut,
	}
	right := Clip{
		ID:             newClipID(),
		Source:         active.Clip.Source,
		SourceDuration: active.Clip.SourceDuration,
		TrimIn:         cut,
		TrimOut:        active.Clip.TrimOut,
	}

	idx := e.clipIndex(active.Clip.ID)
	clips := make([]Clip, 0, len(e.state.Clips)+1)
	clips = append(clips, e.state.Clips[:idx]...)
	clips = append(clips, left, right)
	clips = append(clips, e.state.Clips[idx+1:]...)
	e.state.Clips = clips

	placements := make([]Placement, 0, len(e.state.Placements)+1)
	placements = append(placements, e.state.Placements[:active.Index]...)
	placements = append(placements, Placement{ClipID: left.ID}, Placement{ClipID: right.ID})
	placements = append(placements, e.state.Placements[active.Index+1:]...)
	e.state.Placements = placements
	e.recompute()
}

// SetMusic attaches or replaces the music track. Offset is floored at zero.
func (e *Editor) SetMusic(m MusicTrack) {
	e.pushHistory()
	if m.Offset < 0 {
		m.Offset = 0
	}
	e.state.Music = &m
}

// SetMusicOffset nudges the music start, floored at zero. No-op without music.
func (e *Editor) SetMusicOffset(offset float64) {
	if e.state.Music == nil {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if offset == e.state.Music.Offset {
		return
	}
	e.pushHistory()
	e.state.Music.Offset = offset
}

// ClearMusic detaches the music track.
func (e *Editor) ClearMusic() {
	if e.state.Music == nil {
		return
	}
	e.pushHistory()
	e.state.Music = nil
}

// Seek moves the playhead. Negative values floor at zero; values past the
// end are allowed, consumers clamp for display.
func (e *Editor) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	e.state.Playhead = t
}

// Play and Pause toggle the intent flag only; actual media start is the
// synchronizer's best-effort job.
func (e *Editor) Play()  { e.state.IsPlaying = true }
func (e *Editor) Pause() { e.state.IsPlaying = false }

// SetZoom clamps the zoom factor into its bounds.
func (e *Editor) SetZoom(pxPerSec float64) {
	e.state.PxPerSec = clamp(pxPerSec, config.MinPxPerSec, config.MaxPxPerSec)
}

// SetExportSettings replaces the output encode configuration.
func (e *Editor) SetExportSettings(s ExportSettings) error {
	if s.Width <= 0 || s.Height <= 0 || s.FPS <= 0 || s.BitrateKbps <= 0 {
		return validationErrorf("export settings", "width, height, fps and bitrate must be positive")
	}
	if s.Format == "" {
		s.Format = config.DefaultExportFormat
	}
	e.pushHistory()
	e.state.Export = s
	return nil
}

// recompute re-establishes the no-gaps/no-overlaps invariant: each start is
// the running sum of prior visible durations, never an adjusted stored value.
func (e *Editor) recompute() {
	start := 0.0
	for i, p := range e.state.Placements {
		c, ok := e.state.clipByID(p.ClipID)
		if !ok {
			continue
		}
		e.state.Placements[i].Start = start
		start += c.VisibleDuration()
	}
}

func (e *Editor) clipIndex(id string) int {
	for i, c := range e.state.Clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
