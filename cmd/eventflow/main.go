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

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/eventflow/internal/application"
	"github.com/example/eventflow/internal/config"
	httptransport "github.com/example/eventflow/internal/http"
	"github.com/example/eventflow/internal/logging"
	"github.com/example/eventflow/internal/notify"
	"github.com/example/eventflow/internal/persistence"
	"github.com/example/eventflow/internal/persistence/sqlite"
	"github.com/example/eventflow/internal/seed"
	"github.com/example/eventflow/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := kv.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	codec := persistence.NewCodec(kv)
	snapshot, err := codec.Load(ctx)
	if err != nil {
		logger.Error("failed to load persisted state", "error", err)
		os.Exit(1)
	}

	catalog, err := store.New(snapshot, codec, logger)
	if err != nil {
		logger.Error("failed to build catalog from persisted state", "error", err)
		os.Exit(1)
	}

	now := time.Now
	if cfg.Seed {
		if err := seed.Apply(ctx, catalog, now); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	idGenerator := uuid.NewString

	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.NotifyWebhookURL, logger))
	}

	sessionService := application.NewSessionService(catalog, notifiers, idGenerator, now, logger)
	attendeeService := application.NewAttendeeService(catalog, idGenerator, now, logger)
	speakerService := application.NewSpeakerService(catalog, idGenerator, now, logger)
	roomService := application.NewRoomService(catalog, idGenerator, now, logger)

	metrics := httptransport.NewMetrics()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Sessions:  httptransport.NewSessionHandler(sessionService, logger),
		Attendees: httptransport.NewAttendeeHandler(attendeeService, logger),
		Speakers:  httptransport.NewSpeakerHandler(speakerService, logger),
		Rooms:     httptransport.NewRoomHandler(roomService, logger),
		Export:    httptransport.NewExportHandler(catalog, logger),
		Metrics:   metrics,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Instrument(metrics),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("schedule API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
