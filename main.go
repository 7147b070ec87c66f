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

	"github.com/gin-gonic/gin"

	"github.com/Selaelo1/telemanBot/config"
	"github.com/Selaelo1/telemanBot/db"
	"github.com/Selaelo1/telemanBot/engine"
	"github.com/Selaelo1/telemanBot/handler"
	"github.com/Selaelo1/telemanBot/session"
	"github.com/Selaelo1/telemanBot/telegram"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.Telegram.Token == "" {
		slog.Error("telegram token is not configured")
		os.Exit(1)
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database ready", "path", cfg.Database.Path)

	sessions := session.NewStore()
	stopJanitor := sessions.StartJanitor(session.SweepInterval)
	defer stopJanitor()

	tg, err := telegram.NewClient(cfg.Telegram.Token)
	if err != nil {
		slog.Error("failed to connect to telegram", "err", err)
		os.Exit(1)
	}
	slog.Info("authenticated with telegram", "bot", tg.Username())

	eng := engine.New(sessions, store, tg)

	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger())
	handler.RegisterRoutes(router, handler.New(eng, store, tg, tg))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
