package config

// Editing Constants
const (
	// MinClipSeconds is the minimum visible duration of any clip (trim floor)
	MinClipSeconds = 0.05

	// SnapStepSeconds is the grid used to snap drag gestures, avoiding sub-frame jitter
	SnapStepSeconds = 0.05

	// FrameStepSeconds is the playhead increment for frame-stepping hotkeys
	FrameStepSeconds = 1.0 / 30.0

	// MinPxPerSec and MaxPxPerSec bound the timeline zoom factor
	MinPxPerSec = 50.0
	MaxPxPerSec = 400.0

	// MaxMusicGain is the ceiling applied to the music gain at mix time
	MaxMusicGain = 2.0
)

// Playback Sync Constants
const (
	// VideoSeekTolerance avoids re-seeking the video source when it is already
	// close enough to the target, which would feed back into time updates
	VideoSeekTolerance = 0.03

	// AudioSeekTolerance is looser; audio re-seeks are audible as pitch artifacts
	AudioSeekTolerance = 0.05
)

// Export Constants
const (
	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec for the mixed track
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// SegmentPreset is the ffmpeg preset for re-encoded trim segments
	SegmentPreset = "veryfast"

	// SegmentCRF is the quality target for re-encoded trim segments
	SegmentCRF = "21"

	// PixelFormat keeps segment boundaries codec-compatible
	PixelFormat = "yuv420p"
)

// Default Export Settings
const (
	DefaultExportWidth   = 1280
	DefaultExportHeight  = 720
	DefaultExportFPS     = 30
	DefaultExportBitrate = 8000
	DefaultExportFormat  = "mp4"
)
