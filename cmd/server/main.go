package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/router"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
	"github.com/d60-Lab/microblog/pkg/logger"
	"github.com/d60-Lab/microblog/pkg/storage"
	"github.com/d60-Lab/microblog/pkg/tracing"
)

// @title Microblog API
// @version 1.0
// @description Microblogging backend: tweets, media, follows and likes.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	if cfg.Otel.Enabled {
		shutdown, err := tracing.Init(ctx, "microblog", cfg.Otel.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(ctx) }()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return
	}

	var store storage.Store
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Store(ctx, cfg.Storage.Region, cfg.Storage.Bucket)
	default:
		store, err = storage.NewDiskStore(cfg.Storage.Dir)
	}
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return
	}

	var cache *service.LikeCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		cache = service.NewLikeCache(rdb, time.Minute)
	}

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	mediaSvc := service.NewMediaService(store, mediaRepo)
	relSvc := service.NewRelationshipService(db, userRepo, tweetRepo, followRepo, likeRepo, cache)
	tweetSvc := service.NewTweetService(db, tweetRepo, mediaSvc, cache)
	feedSvc := service.NewFeedService(userRepo, tweetRepo, followRepo, likeRepo, mediaSvc)
	userSvc := service.NewUserService(db, userRepo, relSvc, cache)

	var resolver service.Resolver
	if cfg.Auth.Mode == "jwt" {
		resolver = service.NewJWTResolver(userRepo, []byte(cfg.Auth.JWTSecret))
	} else {
		resolver = service.NewNameResolver(userRepo)
	}

	if len(cfg.Seed.Users) > 0 {
		if err := userSvc.EnsureUsers(ctx, cfg.Seed.Users); err != nil {
			logger.Error("seed users failed", zap.Error(err))
			return
		}
	}

	h := handler.New(resolver, userSvc, tweetSvc, relSvc, feedSvc, mediaSvc)
	r := router.New(h, router.Options{Mode: cfg.Server.Mode, Tracing: cfg.Otel.Enabled})

	logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
