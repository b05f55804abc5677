package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelcut/export"
)

// TickMsg drives playback while the preview clock is running.
type TickMsg time.Time

// ExportProgressMsg carries one progress update from a running export.
type ExportProgressMsg export.Progress

// ExportDoneMsg is sent when the export pipeline finishes or fails.
type ExportDoneMsg struct {
	Output   []byte
	Filename string
	Err      error
}

// UploadDoneMsg reports the outcome of pushing a render to S3.
type UploadDoneMsg struct {
	Key string
	Err error
}

// SaveDoneMsg reports the outcome of a project save.
type SaveDoneMsg struct {
	Err error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
