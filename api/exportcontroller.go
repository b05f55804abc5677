package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"reelcut/export"
	"reelcut/timeline"
)

// exportJob tracks the single in-flight (or most recent) export. The
// concurrent-export policy is reject, not queue: the shell disables its
// export button while one runs, so a second request is a logic error.
type exportJob struct {
	mu       sync.Mutex
	running  bool
	progress export.Progress
	cancel   context.CancelFunc
	output   []byte
	filename string
	errMsg   string
	s3Key    string
}

func (s *Server) registerExportRoutes(r *gin.Engine) {
	r.POST("/api/export", s.handleStartExport)
	r.GET("/api/export/status", s.handleExportStatus)
	r.POST("/api/export/cancel", s.handleExportCancel)
	r.GET("/api/export/download", s.handleExportDownload)
}

func (s *Server) handleStartExport(c *gin.Context) {
	s.job.mu.Lock()
	if s.job.running {
		s.job.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": export.ErrExportBusy.Error()})
		return
	}

	var snap timeline.State
	s.withEditor(func(e *timeline.Editor) { snap = e.Snapshot() })
	if len(snap.Placements) == 0 {
		s.job.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": export.ErrEmptyTimeline.Error()})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.job.running = true
	s.job.cancel = cancel
	s.job.output = nil
	s.job.errMsg = ""
	s.job.s3Key = ""
	s.job.filename = fmt.Sprintf("reelcut_%s.mp4", time.Now().Format("20060102_150405"))
	s.job.progress = export.Progress{Phase: "trim", Percent: 0}
	s.job.mu.Unlock()

	go s.runExport(ctx, snap)

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (s *Server) runExport(ctx context.Context, snap timeline.State) {
	out, err := s.pipeline.Export(ctx, snap, func(p export.Progress) {
		s.job.mu.Lock()
		s.job.progress = p
		s.job.mu.Unlock()
	})

	s.job.mu.Lock()
	defer s.job.mu.Unlock()
	s.job.running = false
	s.job.cancel = nil
	if err != nil {
		s.job.errMsg = err.Error()
		log.Printf("export failed: %v", err)
		return
	}
	s.job.output = out
	log.Printf("export complete: %s (%d bytes)", s.job.filename, len(out))

	if s.uploader != nil {
		uctx, ucancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer ucancel()
		key, err := s.uploader.Upload(uctx, s.job.filename, out)
		if err != nil {
			log.Printf("render upload failed: %v", err)
		} else {
			s.job.s3Key = key
			log.Printf("render uploaded to %s", key)
		}
	}
}

func (s *Server) handleExportStatus(c *gin.Context) {
	s.job.mu.Lock()
	defer s.job.mu.Unlock()

	status := "idle"
	switch {
	case s.job.running:
		status = "running"
	case s.job.errMsg != "":
		status = "failed"
	case s.job.output != nil:
		status = "done"
	}

	resp := gin.H{
		"status":   status,
		"progress": s.job.progress,
	}
	if s.job.errMsg != "" {
		resp["error"] = s.job.errMsg
	}
	if s.job.output != nil {
		resp["filename"] = s.job.filename
		resp["size"] = len(s.job.output)
	}
	if s.job.s3Key != "" {
		resp["s3_key"] = s.job.s3Key
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleExportCancel(c *gin.Context) {
	s.job.mu.Lock()
	cancel := s.job.cancel
	s.job.mu.Unlock()

	if cancel == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no export in progress"})
		return
	}
	cancel()
	c.JSON(http.StatusOK, gin.H{"status": "cancelling"})
}

func (s *Server) handleExportDownload(c *gin.Context) {
	s.job.mu.Lock()
	out := s.job.output
	filename := s.job.filename
	s.job.mu.Unlock()

	if out == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no finished export available"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "video/mp4", out)
}
