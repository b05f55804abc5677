package playback

import (
	"errors"
	"math"
	"testing"
	"time"

	"reelcut/timeline"
)

// fakeSource records every call so tests can assert on reload/seek traffic.
type fakeSource struct {
	src       string
	pos       float64
	playing   bool
	loads     []string
	seeks     []float64
	playErr   error
	playCalls int
}

func (f *fakeSource) Load(src string) {
	f.src = src
	f.pos = 0
	f.loads = append(f.loads, src)
}
func (f *fakeSource) Src() string       { return f.src }
func (f *fakeSource) Position() float64 { return f.pos }
func (f *fakeSource) SetPosition(sec float64) {
	f.pos = sec
	f.seeks = append(f.seeks, sec)
}
func (f *fakeSource) Play() error {
	f.playCalls++
	if f.playErr != nil {
		return f.playErr
	}
	f.playing = true
	return nil
}
func (f *fakeSource) Pause() { f.playing = false }

func editorWithTwoClips(t *testing.T) *timeline.Editor {
	t.Helper()
	e := timeline.NewEditor()
	for _, c := range []timeline.Clip{
		{ID: "a", Source: "a.mp4", SourceDuration: 8, TrimIn: 0, TrimOut: 8},
		{ID: "b", Source: "b.mp4", SourceDuration: 12, TrimIn: 2, TrimOut: 10},
	} {
		if err := e.AddClip(c); err != nil {
			t.Fatalf("AddClip: %v", err)
		}
	}
	return e
}

func TestSyncLoadsOnlyOnIdentityChange(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	e.Seek(1)
	s.Sync()
	e.Seek(2)
	s.Sync()
	e.Seek(3)
	s.Sync()

	if len(video.loads) != 1 || video.loads[0] != "a.mp4" {
		t.Fatalf("expected a single load of a.mp4, got %v", video.loads)
	}

	// Crossing into clip b triggers exactly one reload.
	e.Seek(9)
	s.Sync()
	if len(video.loads) != 2 || video.loads[1] != "b.mp4" {
		t.Fatalf("expected reload of b.mp4, got %v", video.loads)
	}
}

func TestSyncSeeksWithTrimOffset(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	// 1 second into clip b, whose window starts at source time 2.
	e.Seek(9)
	s.Sync()

	if len(video.seeks) == 0 {
		t.Fatal("expected a seek")
	}
	if got := video.seeks[len(video.seeks)-1]; math.Abs(got-3) > 1e-9 {
		t.Fatalf("video position = %v; want 3 (trim in 2 + local 1)", got)
	}
}

func TestSyncSkipsSeekWithinTolerance(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	e.Seek(4)
	s.Sync()
	seeksBefore := len(video.seeks)

	// Source drifts 10ms; inside the 30ms tolerance, no re-seek.
	video.pos = 4.01
	s.Sync()
	if len(video.seeks) != seeksBefore {
		t.Fatalf("seek inside tolerance should be suppressed, got %v", video.seeks)
	}

	// 100ms off: must re-seek.
	video.pos = 4.1
	s.Sync()
	if len(video.seeks) != seeksBefore+1 {
		t.Fatal("seek outside tolerance should fire")
	}
}

func TestSyncMusicFollowsOffset(t *testing.T) {
	e := editorWithTwoClips(t)
	e.SetMusic(timeline.MusicTrack{Source: "theme.mp3", Offset: 2, Gain: 1})
	video := &fakeSource{}
	music := &fakeSource{}
	s := NewSynchronizer(e, video, music)

	// Before the music starts, it holds at zero.
	e.Seek(1)
	s.Sync()
	if music.pos != 0 {
		t.Fatalf("music position = %v; want 0 before offset", music.pos)
	}

	e.Seek(6)
	s.Sync()
	if got := music.Position(); math.Abs(got-4) > 1e-9 {
		t.Fatalf("music position = %v; want 4 (playhead 6 - offset 2)", got)
	}
}

func TestSyncPlayPauseBothSources(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	music := &fakeSource{}
	e.SetMusic(timeline.MusicTrack{Source: "theme.mp3", Gain: 1})
	s := NewSynchronizer(e, video, music)

	e.Play()
	s.Sync()
	if !video.playing || !music.playing {
		t.Fatal("both sources should be playing")
	}

	e.Pause()
	s.Sync()
	if video.playing || music.playing {
		t.Fatal("both sources should be paused")
	}
}

func TestSyncSwallowsPlayFailures(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{playErr: errors.New("autoplay blocked")}
	s := NewSynchronizer(e, video, nil)

	e.Play()
	s.Sync()

	if video.playCalls == 0 {
		t.Fatal("play should have been attempted")
	}
	// Intent survives the refusal.
	if !e.IsPlaying() {
		t.Fatal("IsPlaying reflects intent, not hardware state")
	}
}

func TestProgressFeedsBackIntoPlayhead(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	e.Seek(9) // clip b, local 1, source pos 3
	s.Sync()

	s.HandleVideoProgress(4.5)
	if got := e.Playhead(); math.Abs(got-10.5) > 1e-9 {
		t.Fatalf("playhead = %v; want 10.5 (start 8 + source 4.5 - trim in 2)", got)
	}
}

func TestProgressStopsAtClipEnd(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	e.Seek(9)
	e.Play()
	s.Sync()

	// Source reaches the clip's out point; playback stops, no auto-advance.
	s.HandleVideoProgress(10)
	if e.IsPlaying() {
		t.Fatal("reaching the clip end must pause playback")
	}
	if got := e.Playhead(); math.Abs(got-16) > 1e-9 {
		t.Fatalf("playhead = %v; want 16 (end of clip b)", got)
	}
}

func TestProgressPastTimelineEndPauses(t *testing.T) {
	e := editorWithTwoClips(t)
	video := &fakeSource{}
	s := NewSynchronizer(e, video, nil)

	e.Seek(100)
	e.Play()
	s.HandleVideoProgress(5)
	if e.IsPlaying() {
		t.Fatal("progress with no active clip must pause")
	}
}

func TestClockSourceAdvancesOnlyWhilePlaying(t *testing.T) {
	c := NewClockSource()
	c.Load("a.mp4")

	start := time.Now()
	c.Tick(start)
	if c.Position() != 0 {
		t.Fatal("paused clock must not advance")
	}

	_ = c.Play()
	c.Tick(start.Add(500 * time.Millisecond))
	c.Tick(start.Add(1 * time.Second))
	if got := c.Position(); got < 0.45 || got > 1.1 {
		t.Fatalf("position after ~1s of play = %v", got)
	}

	c.Pause()
	pos := c.Position()
	c.Tick(start.Add(5 * time.Second))
	if c.Position() != pos {
		t.Fatal("paused clock must hold its position")
	}
}
