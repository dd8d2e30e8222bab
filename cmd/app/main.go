package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-lifecycle-service/internal/config"
	"user-lifecycle-service/internal/database"
	"user-lifecycle-service/internal/handler"
	"user-lifecycle-service/internal/repository"
	"user-lifecycle-service/internal/scheduler"
	"user-lifecycle-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	statusRepo := repository.NewStatusRepository(db)
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	actionRepo := repository.NewScheduledActionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Use Cases
	statusUC := usecase.NewStatusUseCase(statusRepo, userRepo, activityRepo, actionRepo, statsRepo, nil)

	// Фоновый обработчик отложенных действий
	sweeper := scheduler.NewSweeper(statusUC, cfg.SweepInterval, logger)
	sweeper.Start()

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	handler.RegisterRoutes(e, statusUC, sweeper, logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
