package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"trackedkv/internal/api"
	"trackedkv/internal/config"
	"trackedkv/internal/engine"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("KV_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data dir",
			slog.String("dir", cfg.DataDir), slog.String("error", err.Error()))
		os.Exit(1)
	}

	journal, stopJournal, err := engine.NewCommitLogManager(context.Background(), engine.CommitLogCfg{
		Path:                   filepath.Join(cfg.DataDir, "journal.log"),
		FlushIntervalInSecond:  cfg.Journal.FlushInterval(),
		EnqueueTimeoutInSecond: cfg.Journal.EnqueueTimeout(),
		MaxEnqueuingMutation:   cfg.Journal.MaxPending,
		BufferBytes:            cfg.Journal.BufferBytes,
		Logger:                 logger,
	})
	if err != nil {
		logger.Error("failed to open commit log", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := engine.OpenStore(journal)
	stats := store.Stats()
	logger.Info("store ready",
		slog.Int("keys", stats.Keys),
		slog.Int("history", stats.HistoryLen),
		slog.Uint64("last_seq", stats.LastSeq))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	stopJournal()
	logger.Info("server stopped")
}
