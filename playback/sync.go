// Package playback keeps video and music presentation sources aligned with
// the timeline model: model changes drive seeks and play/pause, and the
// sources' own reported positions feed back into the playhead.
package playback

import (
	"math"

	"reelcut/config"
	"reelcut/timeline"
)

type Synchronizer struct {
	model *timeline.Editor
	video MediaSource
	music MediaSource
}

func NewSynchronizer(model *timeline.Editor, video, music MediaSource) *Synchronizer {
	return &Synchronizer{model: model, video: video, music: music}
}

// Sync reconciles both sources with the current model state. Call after any
// model mutation and on every frame tick. The active clip is always resolved
// fresh here; stale references from earlier events are never trusted.
func (s *Synchronizer) Sync() {
	playhead := s.model.Playhead()
	active, ok := s.model.ActiveAt(playhead)

	if ok {
		// Reload only when the clip identity changes; reassigning the source
		// on every tick causes visible stutter.
		if s.video.Src() != active.Clip.Source {
			s.video.Load(active.Clip.Source)
		}
		target := active.Clip.TrimIn + active.LocalTime
		if math.Abs(s.video.Position()-target) > config.VideoSeekTolerance {
			s.video.SetPosition(target)
		}
	}

	if m := s.model.Music(); m != nil && s.music != nil {
		if s.music.Src() != m.Source {
			s.music.Load(m.Source)
		}
		target := playhead - m.Offset
		if target < 0 {
			target = 0
		}
		if math.Abs(s.music.Position()-target) > config.AudioSeekTolerance {
			s.music.SetPosition(target)
		}
	}

	if s.model.IsPlaying() {
		// Best effort: a refused play (autoplay policy) is not an error the
		// user can act on. IsPlaying reflects intent, not hardware state.
		_ = s.video.Play()
		if s.music != nil {
			_ = s.music.Play()
		}
	} else {
		s.video.Pause()
		if s.music != nil {
			s.music.Pause()
		}
	}
}

// HandleVideoProgress feeds a source-reported position back into the model
// so the playhead tracks real playback. When the position reaches the end
// of the active clip's window, playback stops; advancing to the next clip
// is deliberately left to the caller.
func (s *Synchronizer) HandleVideoProgress(sourcePos float64) {
	active, ok := s.model.ActiveAt(s.model.Playhead())
	if !ok {
		if s.model.IsPlaying() {
			s.model.Pause()
		}
		return
	}

	if sourcePos >= active.Clip.TrimOut {
		end := active.Placement.Start + active.Clip.VisibleDuration()
		s.model.Seek(end)
		s.model.Pause()
		return
	}

	s.model.Seek(active.Placement.Start + (sourcePos - active.Clip.TrimIn))
}
