package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcfg "github.com/skyhigh636/Skybot/internal/config"
	"github.com/skyhigh636/Skybot/internal/discord"
	"github.com/skyhigh636/Skybot/internal/discordapi"
	"github.com/skyhigh636/Skybot/internal/handler"
	"github.com/skyhigh636/Skybot/internal/history"
	"github.com/skyhigh636/Skybot/internal/msgcat"
	"github.com/skyhigh636/Skybot/internal/obslog"
	"github.com/skyhigh636/Skybot/internal/rps"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	ttl := time.Duration(cfg.SessionTTLSec) * time.Second

	var store rps.Store
	if cfg.RedisURL != "" {
		store, err = rps.NewRedisStore(cfg.RedisURL, ttl)
		if err != nil {
			log.Fatalf("redis store init error: %v", err)
		}
		obslog.L().Info("session_store", zap.String("kind", "redis"))
	} else {
		store = rps.NewMemoryStore(ttl)
		obslog.L().Info("session_store", zap.String("kind", "memory"))
	}

	games := rps.NewManager(store, rps.DefaultChoiceSet())

	var repo *history.Repository
	if cfg.DatabaseURL != "" {
		repo, err = history.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("history repo init error: %v", err)
		}
		games.AttachRecorder(repo)
		obslog.L().Info("history_repository_attached")
	}

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	api := discordapi.NewClient(cfg.AppID, cfg.DiscordToken)

	verify, err := discord.NewVerifyMiddleware(cfg.PublicKey)
	if err != nil {
		log.Fatalf("verify middleware error: %v", err)
	}

	deps := handler.Deps{Games: games, Catalog: cat, API: api}
	if repo != nil {
		deps.Rolls = repo
	}
	router := handler.NewRouter(handler.New(deps), verify)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		obslog.L().Info("listening", zap.Int("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		obslog.L().Info("shutting_down", zap.String("signal", sig.String()))
	case err := <-errCh:
		obslog.L().Fatal("server_error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obslog.L().Warn("shutdown_error", zap.Error(err))
	}
	_ = store.Close()
	if repo != nil {
		_ = repo.Close()
	}
}
