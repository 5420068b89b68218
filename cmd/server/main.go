package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-admin/internal/apiclient"
	"library-admin/internal/config"
	"library-admin/internal/handlers"
	"library-admin/internal/logger"
	"library-admin/internal/notify"
	"library-admin/internal/page"
	"library-admin/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.Get(cfg.Debug)

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(log),
	)

	// Every browser session gets its own set of pages. What the user is
	// told is also written to the log.
	sessions := session.NewManager(func(sink notify.Sink) *page.Workspace {
		return page.NewWorkspace(client, notify.Fanout{sink, notify.Logged{Log: log}}, log)
	}, session.WithLimit(cfg.MaxSessions))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunCleanup(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(sessions, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("api", client.BaseURL()).Msg("admin panel listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
