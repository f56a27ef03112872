package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
	"github.com/mhmdevan/workload-radar/internal/api/routes"
	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/report"
	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/migrations"
	"github.com/mhmdevan/workload-radar/pkg/broker"
	"github.com/mhmdevan/workload-radar/pkg/config"
	"github.com/mhmdevan/workload-radar/pkg/logger"
	"github.com/mhmdevan/workload-radar/pkg/security/auth"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded", zap.String("mode", cfg.Server.Mode))

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Report jobs normally go through Redis to the worker process. In
	// development without Redis the in-memory queue runs them inline.
	var queue broker.Queue
	taskBroker, err := broker.NewTaskBroker(cfg.Redis.URL, cfg.Worker.Queue, cfg.Worker.ResultsTTL, log)
	if err != nil {
		if cfg.Server.Mode == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, running report jobs in-process", zap.Error(err))
		memQueue := broker.NewInMemoryQueue(logrus.New())
		summaryJob := report.NewSummaryJob(db, log, nil)
		memQueue.Register(report.JobGenerateProjectSummary, summaryJob.HandleTask)
		queue = memQueue
	} else {
		defer taskBroker.Close()
		queue = taskBroker
	}

	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)
	taskRepo := task.NewRepository(db)
	reportRepo := report.NewRepository(db)

	userService := user.NewService(userRepo)
	projectService := project.NewService(projectRepo, userRepo)
	taskService := task.NewService(taskRepo, projectRepo, userRepo)
	reportService := report.NewService(reportRepo, projectRepo, queue, log)

	jwtService := auth.NewJWTService(cfg)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	jwtSecret := cfg.Auth.JWTSecret
	routes.NewHealthRoutes(handlers.NewHealthHandler(db)).RegisterRoutes(router)
	routes.NewAuthRoutes(handlers.NewAuthHandler(userService, jwtService), jwtSecret).RegisterRoutes(router)
	routes.NewProjectRoutes(handlers.NewProjectHandler(projectService), handlers.NewTaskHandler(taskService), jwtSecret).RegisterRoutes(router)
	routes.NewTaskRoutes(handlers.NewTaskHandler(taskService), jwtSecret).RegisterRoutes(router)
	routes.NewReportRoutes(handlers.NewReportHandler(reportService), jwtSecret).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}
