package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelcut/storage"
	"reelcut/timeline"
)

func (s *Server) registerProjectRoutes(r *gin.Engine) {
	r.POST("/api/project/save", s.handleSaveProject)
	r.POST("/api/project/load", s.handleLoadProject)
	r.GET("/api/projects", s.handleListProjects)
}

type projectRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleSaveProject(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "project store not configured"})
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var snap timeline.State
	s.withEditor(func(e *timeline.Editor) { snap = e.Snapshot() })
	if err := s.store.Save(req.Name, snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "name": req.Name})
}

func (s *Server) handleLoadProject(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "project store not configured"})
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.store.Load(req.Name)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.withEditor(func(e *timeline.Editor) { e.Restore(state) })
	s.respondProject(c)
}

func (s *Server) handleListProjects(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "project store not configured"})
		return
	}
	infos, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": infos})
}
