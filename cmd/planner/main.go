package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"planner/internal/config"
	"planner/internal/models"
	"planner/internal/registry"
	"planner/internal/server"
	"planner/internal/storage"
	"planner/internal/storage/memory"
	"planner/internal/storage/sqlite"
	"planner/internal/util"
)

func main() {
	configFlag := flag.String("config", util.EnvOrDefault("PLANNER_CONFIG", ""), "Path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)
	logger.Info("planner backend starting",
		slog.String("addr", cfg.Addr),
		slog.String("storage", cfg.Storage.Backend))

	var (
		userStore  storage.Store[*models.User]
		dayStore   storage.Store[*models.Day]
		taskStore  storage.Store[*models.Task]
		notifStore storage.Store[*models.Notification]
	)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.Path, logger)
		if err != nil {
			logger.Error("unable to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		userStore = sqlite.NewStore[models.User](db, sqlite.TableUsers)
		dayStore = sqlite.NewStore[models.Day](db, sqlite.TableDays)
		taskStore = sqlite.NewStore[models.Task](db, sqlite.TableTasks)
		notifStore = sqlite.NewStore[models.Notification](db, sqlite.TableNotifications)
	default:
		userStore = memory.New[models.User]()
		dayStore = memory.New[models.Day]()
		taskStore = memory.New[models.Task]()
		notifStore = memory.New[models.Notification]()
	}

	users := registry.NewUsers(userStore)
	tasks := registry.NewTasks(taskStore)
	days := registry.NewDays(dayStore, tasks)
	notifications := registry.NewNotifications(notifStore)

	srv := server.New(users, tasks, days, notifications, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
