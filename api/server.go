// Package api exposes the timeline editor over HTTP for browser shells.
// All model mutations are serialized behind one mutex, preserving the
// single-writer semantics the editor assumes.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"reelcut/export"
	"reelcut/storage"
	"reelcut/timeline"
)

// Server wires the editor, export pipeline, project store, and optional
// render uploader behind HTTP handlers.
type Server struct {
	mu       sync.Mutex
	editor   *timeline.Editor
	pipeline *export.Pipeline
	store    *storage.Store
	uploader *storage.RenderUploader

	job exportJob
}

// NewServer creates a server around an existing editor. store and uploader
// may be nil; the related endpoints then report 503.
func NewServer(editor *timeline.Editor, pipeline *export.Pipeline, store *storage.Store, uploader *storage.RenderUploader) *Server {
	return &Server{
		editor:   editor,
		pipeline: pipeline,
		store:    store,
		uploader: uploader,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.registerHealthRoutes(r)
	s.registerClipRoutes(r)
	s.registerPlaybackRoutes(r)
	s.registerExportRoutes(r)
	s.registerProjectRoutes(r)
	return r
}

// withEditor runs fn while holding the model lock.
func (s *Server) withEditor(fn func(e *timeline.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

// respondError maps model errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if timeline.IsValidation(err) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// projectView is the serialized editor state plus derived values the shell
// needs for rendering.
type projectView struct {
	timeline.State
	TotalDuration float64               `json:"total_duration"`
	Layout        []timeline.LayoutItem `json:"layout"`
	CanUndo       bool                  `json:"can_undo"`
	CanRedo       bool                  `json:"can_redo"`
}

func (s *Server) projectViewLocked() projectView {
	return projectView{
		State:         s.editor.Snapshot(),
		TotalDuration: s.editor.TotalDuration(),
		Layout:        s.editor.Layout(),
		CanUndo:       s.editor.CanUndo(),
		CanRedo:       s.editor.CanRedo(),
	}
}

func (s *Server) respondProject(c *gin.Context) {
	s.mu.Lock()
	view := s.projectViewLocked()
	s.mu.Unlock()
	c.JSON(http.StatusOK, view)
}
