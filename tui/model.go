package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"reelcut/export"
	"reelcut/playback"
	"reelcut/storage"
	"reelcut/timeline"
)

// cellPx is the pixel width one terminal cell stands in for. The zoom math
// stays in pixel space so the model's px/sec clamping carries over.
const cellPx = 10.0

// Model is the interactive timeline editor.
type Model struct {
	editor   *timeline.Editor
	sync     *playback.Synchronizer
	video    *playback.ClockSource
	music    *playback.ClockSource
	pipeline *export.Pipeline
	store    *storage.Store
	uploader *storage.RenderUploader

	projectName string

	// Selection for keyboard-driven trim/reorder; index into placements.
	selected int

	width int

	exporting    bool
	exportCancel context.CancelFunc
	exportCh     chan export.Progress
	exportBar    progress.Model
	lastProgress export.Progress

	statusMsg string
	errMsg    string
}

// Options configures the editor session.
type Options struct {
	Editor      *timeline.Editor
	Pipeline    *export.Pipeline
	Store       *storage.Store
	Uploader    *storage.RenderUploader
	ProjectName string
}

// NewModel creates the editor TUI around an existing timeline model.
func NewModel(opts Options) Model {
	video := playback.NewClockSource()
	music := playback.NewClockSource()
	return Model{
		editor:      opts.Editor,
		sync:        playback.NewSynchronizer(opts.Editor, video, music),
		video:       video,
		music:       music,
		pipeline:    opts.Pipeline,
		store:       opts.Store,
		uploader:    opts.Uploader,
		projectName: opts.ProjectName,
		width:       100,
		exportBar:   progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// selectedClip resolves the current selection, if any.
func (m Model) selectedClip() (timeline.Clip, bool) {
	placements := m.editor.Placements()
	if m.selected < 0 || m.selected >= len(placements) {
		return timeline.Clip{}, false
	}
	for _, c := range m.editor.Clips() {
		if c.ID == placements[m.selected].ClipID {
			return c, true
		}
	}
	return timeline.Clip{}, false
}

// clampSelection keeps the selection inside the placement list after
// structural changes (split, remove, undo).
func (m *Model) clampSelection() {
	n := len(m.editor.Placements())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Run starts the editor program with mouse support.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
