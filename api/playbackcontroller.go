package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reelcut/timeline"
)

func (s *Server) registerPlaybackRoutes(r *gin.Engine) {
	r.POST("/api/playback/seek", s.handleSeek)
	r.POST("/api/playback/play", s.handlePlay)
	r.POST("/api/playback/pause", s.handlePause)
	r.POST("/api/playback/zoom", s.handleZoom)
	r.POST("/api/history/undo", s.handleUndo)
	r.POST("/api/history/redo", s.handleRedo)
}

type seekRequest struct {
	To float64 `json:"to"`
}

func (s *Server) handleSeek(c *gin.Context) {
	var req seekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.withEditor(func(e *timeline.Editor) { e.Seek(req.To) })
	s.respondProject(c)
}

func (s *Server) handlePlay(c *gin.Context) {
	s.withEditor(func(e *timeline.Editor) { e.Play() })
	s.respondProject(c)
}

func (s *Server) handlePause(c *gin.Context) {
	s.withEditor(func(e *timeline.Editor) { e.Pause() })
	s.respondProject(c)
}

type zoomRequest struct {
	PxPerSec float64 `json:"px_per_sec"`
}

func (s *Server) handleZoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.withEditor(func(e *timeline.Editor) { e.SetZoom(req.PxPerSec) })
	s.respondProject(c)
}

func (s *Server) handleUndo(c *gin.Context) {
	s.withEditor(func(e *timeline.Editor) { e.Undo() })
	s.respondProject(c)
}

func (s *Server) handleRedo(c *gin.Context) {
	s.withEditor(func(e *timeline.Editor) { e.Redo() })
	s.respondProject(c)
}
