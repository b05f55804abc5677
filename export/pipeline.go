// Package export renders a timeline snapshot into a single MP4: per-segment
// trim (stream copy with re-encode fallback), concat re-encode, then music
// mix or audio drop.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"reelcut/config"
	"reelcut/timeline"
)

// ErrExportBusy is returned when an export is already in flight on this
// pipeline instance.
var ErrExportBusy = errors.New("export already in progress")

// ErrEmptyTimeline is returned when the snapshot has no placed clips.
var ErrEmptyTimeline = errors.New("timeline has no clips to export")

// Progress reports per-stage completion. Phases arrive in order: trim,
// concat, mix, finalize.
type Progress struct {
	Phase   string `json:"phase"`
	Percent int    `json:"percent"`
	Message string `json:"message,omitempty"`
}

// ProgressFunc receives progress updates; it may be nil.
type ProgressFunc func(Progress)

// Pipeline owns a scratch directory and renders one export at a time.
type Pipeline struct {
	scratchDir string
	fetch      fetchFunc
	runner     runner

	mu   sync.Mutex
	busy bool
}

// NewPipeline creates a pipeline rendering into the given scratch directory.
// The directory is wiped at the start of each run, never at the end, so a
// cancelled run's leftovers cannot collide with the next one.
func NewPipeline(scratchDir string) *Pipeline {
	return &Pipeline{
		scratchDir: scratchDir,
		fetch:      fetchSource,
		runner:     execRunner{},
	}
}

// Export renders the snapshot and returns the encoded container bytes.
// Cancel via ctx; the in-flight ffmpeg process is killed and ctx.Err()
// propagates. Only one export may run at a time (ErrExportBusy otherwise).
func (p *Pipeline) Export(ctx context.Context, snap timeline.State, onProgress ProgressFunc) ([]byte, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return nil, ErrExportBusy
	}
	p.busy = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	ordered := orderedClips(snap)
	if len(ordered) == 0 {
		return nil, ErrEmptyTimeline
	}

	if err := p.resetScratch(); err != nil {
		return nil, fmt.Errorf("prepare scratch dir: %w", err)
	}

	report := func(phase string, percent int, message string) {
		if onProgress != nil {
			onProgress(Progress{Phase: phase, Percent: percent, Message: message})
		}
	}

	// Stage 1: trim each placement's window into an intermediate segment.
	report("trim", 0, "preparing clips")
	segments := make([]string, 0, len(ordered))
	for i, clip := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := p.fetch(ctx, p.scratchDir, i, clip.Source)
		if err != nil {
			return nil, fmt.Errorf("fetch source %s: %w", clip.Source, err)
		}
		seg := p.scratchPath(fmt.Sprintf("seg_%03d.mp4", i))
		if err := p.trimSegment(ctx, input, seg, clip); err != nil {
			return nil, fmt.Errorf("trim segment %d: %w", i, err)
		}
		segments = append(segments, seg)
		report("trim", int(math.Round(float64(i+1)/float64(len(ordered))*100)), "")
	}

	// Stage 2: concat re-encodes to one uniform codec/pixel format; segment
	// stream copies are not guaranteed byte-compatible across boundaries.
	report("concat", 0, "concatenating")
	concatOut := p.scratchPath("video_concat.mp4")
	if err := p.concatSegments(ctx, segments, concatOut, snap.Export); err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}
	report("concat", 100, "")

	// Stage 3: mix the music track or drop audio entirely.
	finalOut := p.scratchPath("output.mp4")
	if snap.Music != nil && snap.Music.Source != "" {
		report("mix", 10, "mixing audio")
		musicPath, err := p.fetch(ctx, p.scratchDir, -1, snap.Music.Source)
		if err != nil {
			return nil, fmt.Errorf("fetch music %s: %w", snap.Music.Source, err)
		}
		if err := p.mixMusic(ctx, concatOut, musicPath, finalOut, *snap.Music); err != nil {
			return nil, fmt.Errorf("mix: %w", err)
		}
	} else {
		if err := p.dropAudio(ctx, concatOut, finalOut); err != nil {
			return nil, fmt.Errorf("finalize video-only: %w", err)
		}
	}
	report("mix", 100, "")

	out, err := os.ReadFile(finalOut)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	report("finalize", 100, "done")
	return out, nil
}

// trimSegment extracts [TrimIn, TrimOut) of the input. Stream copy is
// attempted first; any failure falls back to a video-only re-encode. Source
// audio is discarded here, the final audio comes solely from the music track.
func (p *Pipeline) trimSegment(ctx context.Context, input, output string, clip timeline.Clip) error {
	dur := clip.VisibleDuration()

	copyCmd := ffmpeg.Input(input, ffmpeg.KwArgs{"ss": formatSeconds(clip.TrimIn)}).
		Output(output, ffmpeg.KwArgs{
			"t": formatSeconds(dur),
			"c": "copy",
		}).
		OverWriteOutput().Compile()

	if err := p.runner.Run(ctx, copyCmd); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("stream copy failed for %s, re-encoding: %v", filepath.Base(input), err)
		encodeCmd := ffmpeg.Input(input, ffmpeg.KwArgs{"ss": formatSeconds(clip.TrimIn)}).
			Output(output, ffmpeg.KwArgs{
				"t":       formatSeconds(dur),
				"map":     "0:v:0",
				"c:v":     config.VideoCodec,
				"preset":  config.SegmentPreset,
				"crf":     config.SegmentCRF,
				"pix_fmt": config.PixelFormat,
			}).
			OverWriteOutput().Compile()
		return p.runner.Run(ctx, encodeCmd)
	}
	return nil
}

// concatSegments joins the segments via the concat demuxer, re-encoding to
// the export settings.
func (p *Pipeline) concatSegments(ctx context.Context, segments []string, output string, settings timeline.ExportSettings) error {
	listPath := p.scratchPath("concat_list.txt")
	var list strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&list, "file '%s'\n", seg)
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	cmd := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeg.KwArgs{
			"c:v":     config.VideoCodec,
			"pix_fmt": config.PixelFormat,
			"s":       fmt.Sprintf("%dx%d", settings.Width, settings.Height),
			"r":       fmt.Sprintf("%d", settings.FPS),
			"b:v":     fmt.Sprintf("%dk", settings.BitrateKbps),
		}).
		OverWriteOutput().Compile()
	return p.runner.Run(ctx, cmd)
}

// mixMusic delays the music by its offset, applies gain, and mixes it with
// the concatenated video's own audio. Additive mix, no normalization;
// clipping is possible and accepted.
func (p *Pipeline) mixMusic(ctx context.Context, videoPath, musicPath, output string, music timeline.MusicTrack) error {
	offsetMs := int(math.Round(math.Max(0, music.Offset) * 1000))
	gain := music.Gain
	if gain < 0 {
		gain = 0
	}
	if gain > config.MaxMusicGain {
		gain = config.MaxMusicGain
	}

	video := ffmpeg.Input(videoPath)
	bgm := ffmpeg.Input(musicPath).Audio().
		Filter("adelay", ffmpeg.Args{fmt.Sprintf("%d|%d", offsetMs, offsetMs)}).
		Filter("volume", ffmpeg.Args{formatGain(gain)})
	mixed := ffmpeg.Filter([]*ffmpeg.Stream{video.Audio(), bgm}, "amix", ffmpeg.Args{},
		ffmpeg.KwArgs{"inputs": 2, "dropout_transition": 0, "normalize": 0})

	cmd := ffmpeg.Output([]*ffmpeg.Stream{video.Video(), mixed}, output, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": config.AudioCodec,
		"b:a": config.AudioBitrate,
	}).OverWriteOutput().Compile()
	return p.runner.Run(ctx, cmd)
}

// dropAudio produces a silent, video-only container via stream copy.
func (p *Pipeline) dropAudio(ctx context.Context, videoPath, output string) error {
	cmd := ffmpeg.Input(videoPath).
		Output(output, ffmpeg.KwArgs{"c:v": "copy", "map": "0:v:0"}).
		OverWriteOutput().Compile()
	return p.runner.Run(ctx, cmd)
}

func (p *Pipeline) resetScratch() error {
	if err := os.RemoveAll(p.scratchDir); err != nil {
		return err
	}
	return os.MkdirAll(p.scratchDir, 0755)
}

func (p *Pipeline) scratchPath(name string) string {
	return filepath.Join(p.scratchDir, name)
}

// orderedClips resolves placements to their clips in timeline order.
func orderedClips(snap timeline.State) []timeline.Clip {
	ordered := make([]timeline.Clip, 0, len(snap.Placements))
	for _, placement := range snap.Placements {
		for _, c := range snap.Clips {
			if c.ID == placement.ClipID {
				ordered = append(ordered, c)
				break
			}
		}
	}
	return ordered
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func formatGain(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
