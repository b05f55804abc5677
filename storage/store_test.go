package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"reelcut/timeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "projects.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState() timeline.State {
	return timeline.State{
		Clips: []timeline.Clip{
			{ID: "a", Source: "a.mp4", SourceDuration: 8, TrimIn: 0.5, TrimOut: 6},
		},
		Placements: []timeline.Placement{{ClipID: "a", Start: 0}},
		Music:      &timeline.MusicTrack{Source: "theme.mp3", Offset: 2, Gain: 0.5},
		Playhead:   3.25,
		IsPlaying:  true,
		PxPerSec:   120,
		Export:     timeline.DefaultExportSettings(),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	in := sampleState()

	if err := s.Save("kitchen-tour", in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load("kitchen-tour")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Playback intent is not persisted.
	in.IsPlaying = false
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\nin:  %+v\nout: %+v", in, out)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	first := sampleState()
	if err := s.Save("p", first); err != nil {
		t.Fatal(err)
	}

	second := sampleState()
	second.Playhead = 9
	second.Music = nil
	if err := s.Save("p", second); err != nil {
		t.Fatal(err)
	}

	out, err := s.Load("p")
	if err != nil {
		t.Fatal(err)
	}
	if out.Playhead != 9 || out.Music != nil {
		t.Fatalf("expected the second save to win, got %+v", out)
	}
}

func TestLoadUnknownProject(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load("nope")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestSaveRequiresName(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save("", sampleState()); err == nil {
		t.Fatal("expected error for empty project name")
	}
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save("one", sampleState()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("two", sampleState()); err != nil {
		t.Fatal(err)
	}

	infos, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(infos))
	}

	if err := s.Delete("one"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	infos, err = s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Name != "two" {
		t.Fatalf("expected only project two, got %+v", infos)
	}

	// Deleting an unknown name is a no-op.
	if err := s.Delete("ghost"); err != nil {
		t.Fatalf("Delete unknown: %v", err)
	}
}
