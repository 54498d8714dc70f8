package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planner/internal/registry"
)

// Server provides the HTTP surface over the entity registries.
type Server struct {
	engine        *gin.Engine
	users         *registry.Users
	tasks         *registry.Tasks
	days          *registry.Days
	notifications *registry.Notifications
	logger        *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(users *registry.Users, tasks *registry.Tasks, days *registry.Days, notifications *registry.Notifications, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter))

	srv := &Server{
		engine:        router,
		users:         users,
		tasks:         tasks,
		days:          days,
		notifications: notifications,
		logger:        logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleHome)
	s.engine.GET("/healthz", s.handleHealth)

	tasks := s.engine.Group("/tasks")
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.PUT(":id", s.handleUpdateTask)
		tasks.DELETE(":id", s.handleDeleteTask)
	}

	users := s.engine.Group("/users")
	{
		users.GET("", s.handleListUsers)
		users.POST("", s.handleCreateUser)
	}

	days := s.engine.Group("/days")
	{
		days.GET("", s.handleListDays)
		days.POST("", s.handleCreateDay)
		days.POST(":id/tasks", s.handleAttachTask)
	}

	notifications := s.engine.Group("/notifications")
	{
		notifications.GET("", s.handleListNotifications)
		notifications.POST("", s.handleCreateNotification)
		notifications.PATCH(":id/read", s.handleMarkNotificationRead)
	}
}

// handleHome answers the smoke-test route.
func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "planner backend is running"})
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns it as JSON with the status the
// error kind maps to: validation and conflict report 400, unknown ids 404,
// anything else is an internal failure.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var validation registry.ValidationError
	var conflict registry.ConflictError
	var missing registry.NotFoundError
	switch {
	case errors.As(err, &validation), errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &missing):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
