package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"reelcut/timeline"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎬 reelcut — " + m.projectName))
	b.WriteString("\n")

	b.WriteString(m.transportLine())
	b.WriteString("\n\n")

	b.WriteString(RulerStyle.Render(m.rulerLine()))
	b.WriteString("\n")
	b.WriteString(m.playheadLine())
	b.WriteString("\n")
	b.WriteString(m.clipTrackLine())
	b.WriteString("\n")
	if m.editor.Music() != nil {
		b.WriteString(m.musicTrackLine())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.exporting {
		b.WriteString(m.exportBar.ViewAs(float64(m.lastProgress.Percent) / 100))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("   %s: %s", m.lastProgress.Phase, m.lastProgress.Message)))
		b.WriteString("\n\n")
	}

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render("✗ " + m.errMsg))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString(StatusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("space play | ←/→ step | h/l select | H/L move | [/] trim | s split | x delete | u undo | ctrl+r redo | +/- zoom | e export | c cancel | w save | q quit"))

	return b.String()
}

// transportLine shows the playhead position against the tracked duration.
func (m Model) transportLine() string {
	state := "⏸"
	if m.editor.IsPlaying() {
		state = "▶"
	}
	line := fmt.Sprintf("%s  %s / %s   zoom %.0f px/s", state,
		formatTimecode(m.editor.Playhead()),
		formatTimecode(m.editor.TotalDuration()),
		m.editor.PxPerSec())
	if active, ok := m.editor.ActiveAt(m.editor.Playhead()); ok {
		line += "   " + InfoStyle.Render(filepath.Base(active.Clip.Source))
	}
	return line
}

// rulerLine draws one tick per second at the current zoom.
func (m Model) rulerLine() string {
	cells := m.timelineCells()
	var b strings.Builder
	for col := 0; col < cells; col++ {
		sec := timeline.PixelsToSeconds(float64(col)*cellPx, m.editor.PxPerSec())
		prev := timeline.PixelsToSeconds(float64(col-1)*cellPx, m.editor.PxPerSec())
		if col == 0 || int(sec) != int(prev) {
			b.WriteString("|")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

// playheadLine draws the caret above the clip track.
func (m Model) playheadLine() string {
	col := int(timeline.SecondsToPixels(m.editor.Playhead(), m.editor.PxPerSec()) / cellPx)
	cells := m.timelineCells()
	if col >= cells {
		col = cells - 1
	}
	if col < 0 {
		col = 0
	}
	return strings.Repeat(" ", col) + PlayheadStyle.Render("▼")
}

// clipTrackLine renders each placed clip as a colored block sized by its
// visible duration.
func (m Model) clipTrackLine() string {
	layout := m.editor.Layout()
	if len(layout) == 0 {
		return InfoStyle.Render("(empty timeline, add clips with the CLI or API)")
	}
	clips := m.editor.Clips()
	var b strings.Builder
	for i, item := range layout {
		w := int(item.WidthPx / cellPx)
		if w < 1 {
			w = 1
		}
		label := item.ClipID
		for _, c := range clips {
			if c.ID == item.ClipID {
				label = filepath.Base(c.Source)
			}
		}
		block := fitLabel(label, w)
		if i == m.selected {
			b.WriteString(SelectedClipStyle.Render(block))
		} else {
			b.WriteString(ClipStyle.Render(block))
		}
	}
	return b.String()
}

// musicTrackLine renders the music bar offset from the timeline origin.
func (m Model) musicTrackLine() string {
	mt := m.editor.Music()
	pad := int(timeline.SecondsToPixels(mt.Offset, m.editor.PxPerSec()) / cellPx)
	remaining := m.timelineCells() - pad
	if remaining < 1 {
		remaining = 1
	}
	label := fmt.Sprintf("♪ %s (gain %.2f)", filepath.Base(mt.Source), mt.Gain)
	return strings.Repeat(" ", pad) + MusicStyle.Render(fitLabel(label, remaining))
}

// timelineCells is how many terminal cells the full timeline occupies, with
// a little headroom past the last clip.
func (m Model) timelineCells() int {
	px := timeline.SecondsToPixels(m.editor.TotalDuration(), m.editor.PxPerSec())
	cells := int(px/cellPx) + 4
	if cells > m.width {
		cells = m.width
	}
	if cells < 10 {
		cells = 10
	}
	return cells
}

// fitLabel pads or truncates a label to fill exactly w cells.
func fitLabel(s string, w int) string {
	r := []rune(" " + s)
	if len(r) > w {
		r = r[:w]
	}
	return string(r) + strings.Repeat(" ", w-len(r))
}

// formatTimecode renders seconds as m:ss.cc.
func formatTimecode(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	min := int(sec) / 60
	rem := sec - float64(min*60)
	return fmt.Sprintf("%d:%05.2f", min, rem)
}
