package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playtracker/internal/config"
	"playtracker/internal/handlers"
	"playtracker/internal/lock"
	"playtracker/internal/ratelimit"
	"playtracker/internal/service"
	"playtracker/internal/store"
	"playtracker/internal/validation"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the dataset store (file, memory, sqlite, postgres, mysql, badger, blob)
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}
	handle := store.NewHandle(backend)
	defer handle.Close()

	log.Printf("Dataset store ready (type: %s)", cfg.Store)

	locks := lock.NewManager(cfg.LockTTL)
	go locks.RunJanitor(ctx, cfg.LockTTL)

	limits := validation.DefaultLimits()
	limits.ChildNameMax = cfg.ChildNameMax
	limits.NicknameMax = cfg.NicknameMax

	// Initialize services
	childService := service.NewChildService(handle, locks, limits)
	gameService := service.NewGameService(handle, limits)
	sessionService := service.NewSessionService(handle, locks, limits, cfg.MaxSessionMinutes)

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.AlertToEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	var notifier service.Notifier = service.LogNotifier{}
	if emailService.IsEnabled() {
		notifier = emailService
	}
	alertService := service.NewAlertService(handle, notifier)
	go alertService.Run(ctx, cfg.AlertInterval)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit, cfg.RateWindow)
		go limiter.RunCleanup(ctx, time.Hour)
	}

	handler := handlers.NewRouter(handlers.Services{
		Children:     childService,
		Games:        gameService,
		Sessions:     sessionService,
		LiveInterval: cfg.LiveInterval,
		Limiter:      limiter,
	})

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
