package timeline

import (
	"math"
	"testing"
)

func TestPixelRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		seconds  float64
		pxPerSec float64
	}{
		{"zero", 0, 100},
		{"fraction", 1.234567, 50},
		{"max zoom", 42.42, 400},
		{"long timeline", 3599.99, 73.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PixelsToSeconds(SecondsToPixels(c.seconds, c.pxPerSec), c.pxPerSec)
			if math.Abs(got-c.seconds) > 1e-6 {
				t.Fatalf("round trip of %v at %v px/s = %v", c.seconds, c.pxPerSec, got)
			}
		})
	}
}

func TestSnap(t *testing.T) {
	cases := []struct {
		name    string
		in      float64
		step    float64
		want    float64
	}{
		{"exact multiple", 1.0, 0.05, 1.0},
		{"round down", 1.024, 0.05, 1.0},
		{"round up", 1.026, 0.05, 1.05},
		{"zero step passes through", 1.234, 0, 1.234},
		{"negative step passes through", 1.234, -1, 1.234},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Snap(c.in, c.step)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("Snap(%v, %v) = %v; want %v", c.in, c.step, got, c.want)
			}
		})
	}
}

func threeClipTrack() ([]Clip, []Placement) {
	clips := []Clip{
		{ID: "a", Source: "a.mp4", SourceDuration: 8, TrimIn: 0, TrimOut: 8},
		{ID: "b", Source: "b.mp4", SourceDuration: 12, TrimIn: 0, TrimOut: 12},
		{ID: "c", Source: "c.mp4", SourceDuration: 10, TrimIn: 0, TrimOut: 10},
	}
	placements := []Placement{
		{ClipID: "a", Start: 0},
		{ClipID: "b", Start: 8},
		{ClipID: "c", Start: 20},
	}
	return clips, placements
}

func TestLayout(t *testing.T) {
	clips, placements := threeClipTrack()
	items := Layout(clips, placements, 100)
	if len(items) != 3 {
		t.Fatalf("expected 3 layout items, got %d", len(items))
	}
	wantStarts := []float64{0, 800, 2000}
	wantWidths := []float64{800, 1200, 1000}
	for i, item := range items {
		if item.StartPx != wantStarts[i] || item.WidthPx != wantWidths[i] {
			t.Errorf("item %d = {start %v, width %v}; want {start %v, width %v}",
				i, item.StartPx, item.WidthPx, wantStarts[i], wantWidths[i])
		}
	}
}

func TestLayoutDropsMissingClips(t *testing.T) {
	clips, placements := threeClipTrack()
	placements = append(placements, Placement{ClipID: "ghost", Start: 30})
	items := Layout(clips, placements, 100)
	if len(items) != 3 {
		t.Fatalf("placement with missing clip should be dropped, got %d items", len(items))
	}
}

func TestTotalDuration(t *testing.T) {
	clips, placements := threeClipTrack()
	if d := TotalDuration(clips, placements); d != 30 {
		t.Fatalf("TotalDuration = %v; want 30", d)
	}
	if d := TotalDuration(nil, nil); d != 0 {
		t.Fatalf("TotalDuration of empty track = %v; want 0", d)
	}
}

func TestActiveClipAt(t *testing.T) {
	clips, placements := threeClipTrack()

	cases := []struct {
		name      string
		t         float64
		wantID    string
		wantLocal float64
		wantIndex int
		wantOK    bool
	}{
		{"start of first", 0, "a", 0, 0, true},
		{"inside second", 10, "b", 2, 1, true},
		{"boundary belongs to next clip", 8, "b", 0, 1, true},
		{"last moment", 29.9, "c", 9.9, 2, true},
		{"past the end", 30, "", 0, 0, false},
		{"way past the end", 1000, "", 0, 0, false},
		{"negative time", -1, "", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			active, ok := ActiveClipAt(clips, placements, c.t)
			if ok != c.wantOK {
				t.Fatalf("ok = %v; want %v", ok, c.wantOK)
			}
			if !ok {
				return
			}
			if active.Clip.ID != c.wantID {
				t.Errorf("clip = %q; want %q", active.Clip.ID, c.wantID)
			}
			if math.Abs(active.LocalTime-c.wantLocal) > 1e-9 {
				t.Errorf("local time = %v; want %v", active.LocalTime, c.wantLocal)
			}
			if active.Index != c.wantIndex {
				t.Errorf("index = %d; want %d", active.Index, c.wantIndex)
			}
		})
	}
}

func TestActiveClipAtToleratesGaps(t *testing.T) {
	// Gaps cannot occur under the model invariants, but a hand-built state
	// with one must not panic.
	clips := []Clip{
		{ID: "a", SourceDuration: 5, TrimIn: 0, TrimOut: 5},
		{ID: "b", SourceDuration: 5, TrimIn: 0, TrimOut: 5},
	}
	placements := []Placement{
		{ClipID: "a", Start: 0},
		{ClipID: "b", Start: 10},
	}
	if _, ok := ActiveClipAt(clips, placements, 7); ok {
		t.Fatal("time inside a gap should resolve to no clip")
	}
	if active, ok := ActiveClipAt(clips, placements, 11); !ok || active.Clip.ID != "b" {
		t.Fatalf("time after the gap should resolve to b, got %+v ok=%v", active, ok)
	}
}
