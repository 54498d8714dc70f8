package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planner/internal/registry"
)

type notificationRequest struct {
	Message string `json:"message"`
	UserID  *int64 `json:"user_id"`
	TaskID  *int64 `json:"task_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
}

// handleListNotifications returns notifications newest first, optionally
// narrowed by ?user_id= and ?unread=.
func (s *Server) handleListNotifications(c *gin.Context) {
	var filter registry.NotificationFilter

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = &userID
	}
	if raw := c.Query("unread"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unread flag"})
			return
		}
		filter.UnreadOnly = unread
	}

	notifications, err := s.notifications.List(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// handleCreateNotification stores a new unread notification.
func (s *Server) handleCreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := s.notifications.Create(c.Request.Context(), registry.CreateNotificationInput{
		Message: req.Message,
		UserID:  req.UserID,
		TaskID:  req.TaskID,
		Type:    req.Type,
		Title:   req.Title,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// handleMarkNotificationRead transitions a notification to read. Marking an
// already-read notification is a no-op returning the unchanged notification.
func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	notification, err := s.notifications.MarkRead(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}
