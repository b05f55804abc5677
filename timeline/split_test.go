package timeline

import (
	"math"
	"reflect"
	"testing"
)

func TestSplitProducesTwoChildren(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 8)
	mustAdd(t, e, "b", 12)

	// Split b at 3s into the clip (timeline time 11).
	e.SplitAt(11)

	clips := e.Clips()
	if len(clips) != 3 {
		t.Fatalf("expected 3 clips after split, got %d", len(clips))
	}
	for _, c := range clips {
		if c.ID == "b" {
			t.Fatal("original clip id must be retired by the split")
		}
	}

	left, right := clips[1], clips[2]
	if left.Source != "b.mp4" || right.Source != "b.mp4" {
		t.Fatal("children must share the original source")
	}
	if math.Abs(left.VisibleDuration()-3) > 1e-9 || math.Abs(right.VisibleDuration()-9) > 1e-9 {
		t.Fatalf("children durations = %v, %v; want 3, 9", left.VisibleDuration(), right.VisibleDuration())
	}
	if math.Abs(left.VisibleDuration()+right.VisibleDuration()-12) > 1e-9 {
		t.Fatal("split must conserve visible duration")
	}
	if left.TrimOut != right.TrimIn {
		t.Fatalf("children must abut in source time: left out %v, right in %v", left.TrimOut, right.TrimIn)
	}

	placements := e.Placements()
	if placements[1].Start != 8 || math.Abs(placements[2].Start-11) > 1e-9 {
		t.Fatalf("children placements = %+v", placements[1:3])
	}
	checkInvariants(t, e)
}

func TestSplitRespectsTrimWindow(t *testing.T) {
	// A clip already trimmed to [2, 9] of a 10s source, split 4s in:
	// left covers [2, 6], right covers [6, 9].
	e := NewEditor()
	if err := e.AddClip(Clip{ID: "a", Source: "a.mp4", SourceDuration: 10, TrimIn: 2, TrimOut: 9}); err != nil {
		t.Fatalf("AddClip: %v", err)
	}

	e.SplitAt(4)

	clips := e.Clips()
	if len(clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(clips))
	}
	if clips[0].TrimIn != 2 || clips[0].TrimOut != 6 {
		t.Fatalf("left window = [%v, %v]; want [2, 6]", clips[0].TrimIn, clips[0].TrimOut)
	}
	if clips[1].TrimIn != 6 || clips[1].TrimOut != 9 {
		t.Fatalf("right window = [%v, %v]; want [6, 9]", clips[1].TrimIn, clips[1].TrimOut)
	}
	checkInvariants(t, e)
}

func TestSplitNoopCases(t *testing.T) {
	cases := []struct {
		name string
		at   float64
	}{
		{"outside any clip", 100},
		{"within floor of left edge", 8.01},
		{"within floor of right edge", 19.99},
		{"exactly at boundary", 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEditor()
			mustAdd(t, e, "a", 8)
			mustAdd(t, e, "b", 12)
			before := e.Snapshot()

			e.SplitAt(c.at)

			if !reflect.DeepEqual(before, e.Snapshot()) {
				t.Fatal("split near an edge or outside any clip must be a no-op")
			}
		})
	}
}

func TestSplitThenUndoRestoresOriginal(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 8)
	before := e.Snapshot()

	e.SplitAt(4)
	if len(e.Clips()) != 2 {
		t.Fatalf("expected 2 clips after split, got %d", len(e.Clips()))
	}

	e.Undo()
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Fatal("undo after split must restore the original clip")
	}
}
