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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"guesthouse/internal/config"
	"guesthouse/internal/database"
	"guesthouse/internal/events"
	"guesthouse/internal/pkg/clock"
	jwtsvc "guesthouse/internal/pkg/jwt"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/pkg/logger"
	"guesthouse/internal/repository"
	"guesthouse/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "guesthouse-api")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			zlog.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		locker = lock.NewRedis(rdb, cfg.LockTTL, zlog.Named("lock"))
		zlog.Info("using redis reservation lock", zap.String("addr", cfg.RedisAddr))
	}

	hub := events.NewHub(cfg.CORSAllowedOrigins, zlog.Named("ws"))
	publishers := events.Multi{hub}
	if cfg.NATSURL != "" {
		nc, err := events.NewNATSPublisher(cfg.NATSURL, zlog.Named("nats"))
		if err != nil {
			zlog.Fatal("nats connection failed", zap.Error(err))
		}
		defer nc.Close()
		publishers = append(publishers, nc)
		zlog.Info("publishing reservation events to nats", zap.String("url", cfg.NATSURL))
	}

	router := server.NewRouter(server.Deps{
		Store:              repository.NewStore(db),
		JWT:                jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Locker:             locker,
		Publisher:          publishers,
		Hub:                hub,
		Clock:              clock.System{},
		Log:                zlog,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		zlog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zlog.Error("shutdown error", zap.Error(err))
		}
	}()

	zlog.Info("starting guesthouse api", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server error", zap.Error(err))
	}
}
