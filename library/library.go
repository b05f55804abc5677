// Package library turns source media files into timeline clips, using
// ffprobe for the authoritative native duration.
package library

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"reelcut/timeline"
)

// NewClip builds an untrimmed clip over the whole source.
func NewClip(source string, duration float64) timeline.Clip {
	return timeline.Clip{
		ID:             uuid.New().String(),
		Source:         source,
		SourceDuration: duration,
		TrimIn:         0,
		TrimOut:        duration,
	}
}

// FromSource probes the asset and returns an untrimmed clip covering it.
func FromSource(source string) (timeline.Clip, error) {
	duration, err := ProbeDuration(source)
	if err != nil {
		return timeline.Clip{}, fmt.Errorf("probe %s: %w", source, err)
	}
	return NewClip(source, duration), nil
}

// probeFormat mirrors the container-level block of ffprobe's JSON output.
type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration reads the container duration in seconds via ffprobe.
func ProbeDuration(source string) (float64, error) {
	raw, err := ffmpeg.Probe(source)
	if err != nil {
		return 0, err
	}
	return parseProbeDuration(raw)
}

func parseProbeDuration(raw string) (float64, error) {
	var pf probeFormat
	if err := json.Unmarshal([]byte(raw), &pf); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}
	if pf.Format.Duration == "" {
		return 0, fmt.Errorf("probe output has no duration")
	}
	d, err := strconv.ParseFloat(pf.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", pf.Format.Duration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("non-positive duration %v", d)
	}
	return d, nil
}
