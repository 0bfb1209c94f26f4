package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/bigdogpool/internal/api/pickem"
	"github.com/omarshaarawi/bigdogpool/internal/api/pool"
	"github.com/omarshaarawi/bigdogpool/internal/bot"
	"github.com/omarshaarawi/bigdogpool/internal/config"
	"github.com/omarshaarawi/bigdogpool/internal/httpapi"
	"github.com/omarshaarawi/bigdogpool/internal/repository/memory"
	"github.com/omarshaarawi/bigdogpool/internal/scheduler"
	"github.com/omarshaarawi/bigdogpool/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	poolClient := pool.NewClient(cfg.PoolAPI)
	poolAPI := pool.NewAPI(poolClient)
	pickemAPI := pickem.NewAPI(poolAPI)

	repo := memory.NewRepository()
	poolService := service.NewPoolService(pickemAPI, repo, cfg.PoolAPI.SeasonID, cfg.ContentionOptions())

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, poolService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, poolService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.New(cfg.HTTP, poolService).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.ComputeTimeout + 5*time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}

	return nil
}
