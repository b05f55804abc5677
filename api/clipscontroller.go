package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reelcut/library"
	"reelcut/timeline"
)

func (s *Server) registerClipRoutes(r *gin.Engine) {
	r.GET("/api/project", s.handleGetProject)
	r.POST("/api/clips", s.handleAddClip)
	r.DELETE("/api/clips/:id", s.handleRemoveClip)
	r.POST("/api/clips/:id/trim", s.handleTrimClip)
	r.POST("/api/timeline/reorder", s.handleReorder)
	r.POST("/api/timeline/split", s.handleSplit)
	r.PUT("/api/music", s.handleSetMusic)
	r.DELETE("/api/music", s.handleClearMusic)
}

func (s *Server) handleGetProject(c *gin.Context) {
	s.respondProject(c)
}

// addClipRequest accepts either a fully described clip or just a source to
// probe. A zero duration triggers the probe.
type addClipRequest struct {
	ID             string  `json:"id"`
	Source         string  `json:"source" binding:"required"`
	SourceDuration float64 `json:"source_duration"`
	TrimIn         float64 `json:"trim_in"`
	TrimOut        float64 `json:"trim_out"`
}

func (s *Server) handleAddClip(c *gin.Context) {
	var req addClipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clip := timeline.Clip{
		ID:             req.ID,
		Source:         req.Source,
		SourceDuration: req.SourceDuration,
		TrimIn:         req.TrimIn,
		TrimOut:        req.TrimOut,
	}
	if clip.SourceDuration == 0 {
		probed, err := library.FromSource(req.Source)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		probed.ID = req.ID
		clip = probed
	}
	if clip.ID == "" {
		clip.ID = library.NewClip(clip.Source, clip.SourceDuration).ID
	}
	if clip.TrimOut == 0 {
		clip.TrimOut = clip.SourceDuration
	}

	var addErr error
	s.withEditor(func(e *timeline.Editor) { addErr = e.AddClip(clip) })
	if addErr != nil {
		respondError(c, addErr)
		return
	}
	s.respondProject(c)
}

func (s *Server) handleRemoveClip(c *gin.Context) {
	id := c.Param("id")
	s.withEditor(func(e *timeline.Editor) { e.RemoveClip(id) })
	s.respondProject(c)
}

type trimRequest struct {
	// Exactly the fields present are applied; trim is clamped, never rejected.
	TrimIn  *float64 `json:"trim_in"`
	TrimOut *float64 `json:"trim_out"`
}

func (s *Server) handleTrimClip(c *gin.Context) {
	var req trimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	s.withEditor(func(e *timeline.Editor) {
		if req.TrimIn != nil {
			e.TrimIn(id, *req.TrimIn)
		}
		if req.TrimOut != nil {
			e.TrimOut(id, *req.TrimOut)
		}
	})
	s.respondProject(c)
}

type reorderRequest struct {
	Order []string `json:"order" binding:"required"`
}

func (s *Server) handleReorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var reorderErr error
	s.withEditor(func(e *timeline.Editor) { reorderErr = e.Reorder(req.Order) })
	if reorderErr != nil {
		respondError(c, reorderErr)
		return
	}
	s.respondProject(c)
}

type splitRequest struct {
	At float64 `json:"at"`
}

func (s *Server) handleSplit(c *gin.Context) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.withEditor(func(e *timeline.Editor) { e.SplitAt(req.At) })
	s.respondProject(c)
}

func (s *Server) handleSetMusic(c *gin.Context) {
	var m timeline.MusicTrack
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if m.Source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "music source is required"})
		return
	}
	if m.Gain == 0 {
		m.Gain = 1
	}
	s.withEditor(func(e *timeline.Editor) { e.SetMusic(m) })
	s.respondProject(c)
}

func (s *Server) handleClearMusic(c *gin.Context) {
	s.withEditor(func(e *timeline.Editor) { e.ClearMusic() })
	s.respondProject(c)
}
