package timeline

import "math"

// Pure time/pixel mapping helpers. These are stateless and shared by the
// view, the synchronizer, and the model itself.

// SecondsToPixels converts a timeline time to a horizontal pixel offset.
func SecondsToPixels(t, pxPerSec float64) float64 {
	return t * pxPerSec
}

// PixelsToSeconds converts a horizontal pixel offset back to timeline time.
func PixelsToSeconds(x, pxPerSec float64) float64 {
	return x / pxPerSec
}

// Snap rounds seconds to the nearest multiple of step. A non-positive step
// returns the input unchanged.
func Snap(seconds, step float64) float64 {
	if step <= 0 {
		return seconds
	}
	return math.Round(seconds/step) * step
}

// LayoutItem is one clip block in pixel space.
type LayoutItem struct {
	ClipID  string  `json:"clip_id"`
	StartPx float64 `json:"start_px"`
	WidthPx float64 `json:"width_px"`
}

// Layout maps every placement to a pixel-space block. Placements whose clip
// is missing are dropped; the invariants make that impossible, but a stale
// view must never panic over it.
func Layout(clips []Clip, placements []Placement, pxPerSec float64) []LayoutItem {
	items := make([]LayoutItem, 0, len(placements))
	for _, p := range placements {
		c, ok := findClip(clips, p.ClipID)
		if !ok {
			continue
		}
		items = append(items, LayoutItem{
			ClipID:  p.ClipID,
			StartPx: SecondsToPixels(p.Start, pxPerSec),
			WidthPx: SecondsToPixels(c.VisibleDuration(), pxPerSec),
		})
	}
	return items
}

// TotalDuration is the end of the last placement, or 0 for an empty track.
func TotalDuration(clips []Clip, placements []Placement) float64 {
	total := 0.0
	for _, p := range placements {
		c, ok := findClip(clips, p.ClipID)
		if !ok {
			continue
		}
		if end := p.Start + c.VisibleDuration(); end > total {
			total = end
		}
	}
	return total
}

// ActiveClip describes the clip under a given timeline position.
type ActiveClip struct {
	Clip      Clip
	Placement Placement
	Index     int
	LocalTime float64
}

// ActiveClipAt finds the placement whose interval [start, start+visible)
// contains t. The second return is false when t falls outside every clip.
func ActiveClipAt(clips []Clip, placements []Placement, t float64) (ActiveClip, bool) {
	for i, p := range placements {
		c, ok := findClip(clips, p.ClipID)
		if !ok {
			continue
		}
		if t >= p.Start && t < p.Start+c.VisibleDuration() {
			return ActiveClip{Clip: c, Placement: p, Index: i, LocalTime: t - p.Start}, true
		}
	}
	return ActiveClip{}, false
}

func findClip(clips []Clip, id string) (Clip, bool) {
	for _, c := range clips {
		if c.ID == id {
			return c, true
		}
	}
	return Clip{}, false
}
