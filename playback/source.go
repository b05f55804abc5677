package playback

import "time"

// MediaSource is a presentation surface for one media asset: the video
// frame under the preview, or the music track. Implementations are external
// players; Play failures (autoplay policies and the like) are reported but
// treated as best-effort by the synchronizer.
type MediaSource interface {
	// Load points the source at a new asset. Position resets to zero.
	Load(src string)
	// Src is the currently loaded asset, empty when nothing is loaded.
	Src() string
	// Position is the current presented position in asset seconds.
	Position() float64
	// SetPosition seeks within the asset.
	SetPosition(sec float64)
	Play() error
	Pause()
}

// ClockSource is a wall-clock-driven MediaSource used for preview surfaces
// that have no real decoder behind them (the terminal view). While playing,
// Tick advances the position by elapsed real time.
type ClockSource struct {
	src      string
	pos      float64
	playing  bool
	lastTick time.Time
}

func NewClockSource() *ClockSource { return &ClockSource{} }

func (c *ClockSource) Load(src string) {
	c.src = src
	c.pos = 0
}

func (c *ClockSource) Src() string            { return c.src }
func (c *ClockSource) Position() float64      { return c.pos }
func (c *ClockSource) SetPosition(sec float64) { c.pos = sec }

func (c *ClockSource) Play() error {
	if !c.playing {
		c.playing = true
		c.lastTick = time.Now()
	}
	return nil
}

func (c *ClockSource) Pause() { c.playing = false }

// Tick advances the clock and returns the new position. Call it from the
// owner's frame timer.
func (c *ClockSource) Tick(now time.Time) float64 {
	if c.playing {
		if !c.lastTick.IsZero() {
			c.pos += now.Sub(c.lastTick).Seconds()
		}
		c.lastTick = now
	}
	return c.pos
}

func (c *ClockSource) Playing() bool { return c.playing }
