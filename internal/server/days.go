package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"planner/internal/registry"
)

type dayRequest struct {
	Date string `json:"date"`
}

// handleListDays returns all days, each with its nested task list.
func (s *Server) handleListDays(c *gin.Context) {
	days, err := s.days.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// handleCreateDay creates a day, defaulting to today's date. An absent body
// is a valid request for a day with today's date, so EOF from binding is
// treated as an empty one; this also keeps chunked requests working, where
// the content length is unknown.
func (s *Server) handleCreateDay(c *gin.Context) {
	var req dayRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := s.days.Create(c.Request.Context(), req.Date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// handleAttachTask creates a task linked to the day in the path.
func (s *Server) handleAttachTask(c *gin.Context) {
	dayID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.days.AttachTask(c.Request.Context(), dayID, registry.AttachTaskInput{
		Title:       getString(req.Title),
		Description: getString(req.Description),
		Status:      getString(req.Status),
		UserID:      req.UserID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}
