package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"planner/internal/registry"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	UserID      *int64  `json:"user_id"`
}

// handleListTasks returns every task in insertion order.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// handleCreateTask inserts a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), registry.CreateTaskInput{
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

// handleUpdateTask applies the fields present in the request body and leaves
// the rest of the task untouched. The body is decoded into a field map so a
// field sent as JSON null still counts as present: a null title fails
// validation and a null description clears it, as with the empty string.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var in registry.UpdateTaskInput
	for name, target := range map[string]**string{
		"title":       &in.Title,
		"description": &in.Description,
		"status":      &in.Status,
	} {
		raw, present := fields[name]
		if !present {
			continue
		}
		value, err := stringOrEmpty(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
			return
		}
		*target = value
	}

	task, err := s.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// stringOrEmpty decodes a present JSON value, mapping null to the empty
// string.
func stringOrEmpty(raw json.RawMessage) (*string, error) {
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	if v == nil {
		empty := ""
		return &empty, nil
	}
	return v, nil
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
