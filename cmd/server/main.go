package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/postbook/postbook/internal/cache"
	"github.com/postbook/postbook/internal/config"
	"github.com/postbook/postbook/internal/es"
	"github.com/postbook/postbook/internal/events"
	"github.com/postbook/postbook/internal/handlers"
	"github.com/postbook/postbook/internal/identity"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/middleware"
	"github.com/postbook/postbook/internal/pagination"
	"github.com/postbook/postbook/internal/repo"
	"github.com/postbook/postbook/internal/service"
	httpserver "github.com/postbook/postbook/internal/transport/http"
)

const postsIndex = "posts"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	producer := events.NewProducer(cfg.KAFKA_ADDRESS)

	var respCache *cache.ResponseCache
	if cfg.REDIS_ADDRESS != "" {
		respCache, err = cache.New(cfg.REDIS_ADDRESS, cfg.CacheTTL())
		if err != nil {
			log.Fatalf("redis init: %v", err)
		}
	}

	deps := &httpserver.Deps{DB: db}
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		deps.Posts = &handlers.PostHandler{ES: esClient, Index: postsIndex}
	} else {
		deps.Posts = &handlers.PostHandler{}
	}

	store := repo.New(db)
	secret := []byte(cfg.JWT_SECRET)

	identitySvc := &identity.Service{
		Repo:            store,
		Secret:          secret,
		TokenLifetime:   cfg.TokenLifetime(),
		RefreshLifetime: cfg.RefreshLifetime(),
	}
	contentSvc := &service.ContentService{Repo: store}
	uris := pagination.NewURIService(cfg.BASE_URL)

	deps.Auth = &middleware.BearerAuth{Secret: secret}
	deps.Cache = respCache
	deps.Identity = &handlers.IdentityHandler{Svc: identitySvc, Producer: producer}
	deps.Posts.Svc = contentSvc
	deps.Posts.URIs = uris
	deps.Posts.Producer = producer
	deps.Tags = &handlers.TagHandler{Svc: contentSvc, Producer: producer}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDRESS,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", cfg.HTTP_ADDRESS)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	if respCache != nil {
		if err := respCache.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
