package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/config"
	appHTTP "github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/cron"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/logger"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logCloser := logger.Init(cfg.Log)
	defer logCloser.Close()

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        Version,
		Logger:         slog.Default(),
	}, a.JWT, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(a.JWT, a.Auth),
		Activity:     appHTTP.NewActivityHandler(a.Catalog),
		Employee:     appHTTP.NewEmployeeHandler(a.Employees),
		Progress:     appHTTP.NewProgressHandler(a.Progress),
		Report:       appHTTP.NewReportHandler(a.Reports),
		Submission:   appHTTP.NewSubmissionHandler(a.Submissions),
		Performance:  appHTTP.NewPerformanceHandler(a.Performance),
		Document:     appHTTP.NewDocumentHandler(a.Documents),
		Dashboard:    appHTTP.NewDashboardHandler(a.Dashboard),
		Notification: appHTTP.NewNotificationHandler(a.Notifications, a.JWT),
	})

	scheduler := cron.NewScheduler()
	a.Reminders.RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "version", Version, "activities", len(a.Catalog.Activities()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	scheduler.Stop()
	a.Close()
}
