package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelcut/export"
	"reelcut/storage"
	"reelcut/timeline"
)

// startExport creates a command that runs the full pipeline. Progress updates
// go through ch so the view can render them while the export runs.
func startExport(ctx context.Context, pipeline *export.Pipeline, snap timeline.State, ch chan export.Progress) tea.Cmd {
	return func() tea.Msg {
		filename := fmt.Sprintf("reelcut_%d.mp4", time.Now().Unix())
		out, err := pipeline.Export(ctx, snap, func(p export.Progress) {
			select {
			case ch <- p:
			default:
			}
		})
		if err == nil {
			err = os.WriteFile(filename, out, 0o644)
		}
		return ExportDoneMsg{Output: out, Filename: filename, Err: err}
	}
}

// waitForProgress blocks for the next progress update on ch.
func waitForProgress(ch chan export.Progress) tea.Cmd {
	return func() tea.Msg {
		return ExportProgressMsg(<-ch)
	}
}

// uploadRender creates a command that pushes a finished export to S3.
func uploadRender(uploader *storage.RenderUploader, name string, data []byte) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		key, err := uploader.Upload(ctx, name, data)
		return UploadDoneMsg{Key: key, Err: err}
	}
}

// saveProject creates a command that persists the current timeline state.
func saveProject(store *storage.Store, name string, snap timeline.State) tea.Cmd {
	return func() tea.Msg {
		return SaveDoneMsg{Err: store.Save(name, snap)}
	}
}
