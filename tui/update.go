package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelcut/config"
	"reelcut/export"
	"reelcut/timeline"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.exportBar.Width = msg.Width - 20
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	case ExportProgressMsg:
		return m.handleExportProgress(msg)
	case ExportDoneMsg:
		return m.handleExportDone(msg)
	case UploadDoneMsg:
		return m.handleUploadDone(msg)
	case SaveDoneMsg:
		return m.handleSaveDone(msg)
	}
	return m, nil
}

// handleTick advances the preview clocks and feeds playback state back into
// the timeline model.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)
	pos := m.video.Tick(now)
	m.music.Tick(now)
	if m.editor.IsPlaying() {
		m.sync.HandleVideoProgress(pos)
	}
	m.sync.Sync()
	return m, tickCmd()
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "ctrl+c", "q":
		if m.exportCancel != nil {
			m.exportCancel()
		}
		return m, tea.Quit

	case " ":
		if m.editor.IsPlaying() {
			m.editor.Pause()
		} else {
			m.editor.Play()
		}
		m.sync.Sync()

	case "left":
		m.editor.Seek(m.editor.Playhead() - config.FrameStepSeconds)
		m.sync.Sync()
	case "right":
		m.editor.Seek(m.editor.Playhead() + config.FrameStepSeconds)
		m.sync.Sync()
	case "shift+left":
		m.editor.Seek(m.editor.Playhead() - 1)
		m.sync.Sync()
	case "shift+right":
		m.editor.Seek(m.editor.Playhead() + 1)
		m.sync.Sync()

	case "h":
		if m.selected > 0 {
			m.selected--
		}
	case "l":
		if m.selected < len(m.editor.Placements())-1 {
			m.selected++
		}

	case "[":
		return m.trimSelectedAtPlayhead(true)
	case "]":
		return m.trimSelectedAtPlayhead(false)

	case "s":
		m.editor.SplitAt(m.editor.Playhead())
		m.clampSelection()

	case "x":
		if clip, ok := m.selectedClip(); ok {
			m.editor.RemoveClip(clip.ID)
			m.clampSelection()
			m.sync.Sync()
		}

	case "H":
		return m.moveSelected(-1)
	case "L":
		return m.moveSelected(1)

	case "m":
		m.editor.SetMusicOffset(musicOffset(m.editor) - config.SnapStepSeconds)
	case "M":
		m.editor.SetMusicOffset(musicOffset(m.editor) + config.SnapStepSeconds)

	case "u":
		m.editor.Undo()
		m.clampSelection()
		m.sync.Sync()
	case "ctrl+r":
		m.editor.Redo()
		m.clampSelection()
		m.sync.Sync()

	case "+", "=":
		m.editor.SetZoom(m.editor.PxPerSec() * 1.25)
	case "-":
		m.editor.SetZoom(m.editor.PxPerSec() / 1.25)

	case "e":
		return m.startExport()
	case "c":
		if m.exporting && m.exportCancel != nil {
			m.exportCancel()
			m.statusMsg = "Cancelling export..."
		}

	case "w":
		if m.store == nil {
			m.errMsg = "no project store configured"
			return m, nil
		}
		m.statusMsg = "Saving..."
		return m, saveProject(m.store, m.projectName, m.editor.Snapshot())
	}

	return m, nil
}

// handleMouse maps clicks to seeks and the wheel to zoom.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.editor.SetZoom(m.editor.PxPerSec() * 1.1)
	case tea.MouseWheelDown:
		m.editor.SetZoom(m.editor.PxPerSec() / 1.1)
	case tea.MouseLeft:
		sec := timeline.PixelsToSeconds(float64(msg.X)*cellPx, m.editor.PxPerSec())
		m.editor.Seek(timeline.Snap(sec, config.SnapStepSeconds))
		m.sync.Sync()
	}
	return m, nil
}

// trimSelectedAtPlayhead moves the selected clip's in or out point to the
// playhead, when the playhead sits inside that clip.
func (m Model) trimSelectedAtPlayhead(in bool) (tea.Model, tea.Cmd) {
	clip, ok := m.selectedClip()
	if !ok {
		return m, nil
	}
	placements := m.editor.Placements()
	start := placements[m.selected].Start
	local := m.editor.Playhead() - start
	if local < 0 || local > clip.VisibleDuration() {
		m.errMsg = "playhead is outside the selected clip"
		return m, nil
	}
	if in {
		m.editor.TrimIn(clip.ID, clip.TrimIn+local)
	} else {
		m.editor.TrimOut(clip.ID, clip.TrimIn+local)
	}
	m.sync.Sync()
	return m, nil
}

// moveSelected swaps the selected clip with its neighbor.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	placements := m.editor.Placements()
	target := m.selected + delta
	if m.selected < 0 || m.selected >= len(placements) || target < 0 || target >= len(placements) {
		return m, nil
	}
	ids := make([]string, len(placements))
	for i, p := range placements {
		ids[i] = p.ClipID
	}
	ids[m.selected], ids[target] = ids[target], ids[m.selected]
	if err := m.editor.Reorder(ids); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.selected = target
	return m, nil
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		m.errMsg = "an export is already running"
		return m, nil
	}
	if len(m.editor.Placements()) == 0 {
		m.errMsg = "timeline is empty"
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.exporting = true
	m.exportCancel = cancel
	m.exportCh = make(chan export.Progress, 16)
	m.lastProgress = export.Progress{}
	m.statusMsg = "Exporting..."
	return m, tea.Batch(
		startExport(ctx, m.pipeline, m.editor.Snapshot(), m.exportCh),
		waitForProgress(m.exportCh),
	)
}

func (m Model) handleExportProgress(msg ExportProgressMsg) (tea.Model, tea.Cmd) {
	if !m.exporting {
		return m, nil
	}
	m.lastProgress = export.Progress(msg)
	return m, waitForProgress(m.exportCh)
}

func (m Model) handleExportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	if m.exportCancel != nil {
		m.exportCancel()
		m.exportCancel = nil
	}
	// The pipeline has returned, so no more sends can happen. Closing frees
	// the pending progress reader.
	if m.exportCh != nil {
		close(m.exportCh)
		m.exportCh = nil
	}
	if msg.Err != nil {
		m.statusMsg = ""
		m.errMsg = fmt.Sprintf("export failed: %v", msg.Err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Exported %s (%d bytes)", msg.Filename, len(msg.Output))
	if m.uploader != nil {
		return m, uploadRender(m.uploader, msg.Filename, msg.Output)
	}
	return m, nil
}

func (m Model) handleUploadDone(msg UploadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.errMsg = fmt.Sprintf("upload failed: %v", msg.Err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Uploaded render to s3 key %s", msg.Key)
	return m, nil
}

func (m Model) handleSaveDone(msg SaveDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusMsg = ""
		m.errMsg = fmt.Sprintf("save failed: %v", msg.Err)
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Saved project %q", m.projectName)
	return m, nil
}

func musicOffset(e *timeline.Editor) float64 {
	if mt := e.Music(); mt != nil {
		return mt.Offset
	}
	return 0
}
