package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"little-lemon/internal/adapter/handler"
	"little-lemon/internal/adapter/storage"
	"little-lemon/internal/config"
	"little-lemon/internal/core/service"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("open mysql", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		log.Error("ping mysql", "error", err)
		os.Exit(1)
	}
	log.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("ping redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to redis")

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.Migrate(ctx); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}
	redisAdapter := storage.NewRedisAdapter(rdb)

	accounts := service.NewAccountService(mysqlAdapter, redisAdapter)
	catalog := service.NewCatalogService(mysqlAdapter)
	cart := service.NewCartService(mysqlAdapter, mysqlAdapter)
	orders := service.NewOrderService(mysqlAdapter, mysqlAdapter)

	httpHandler := handler.NewHTTPHandler(log, accounts, catalog, cart, orders, redisAdapter, handler.ThrottleConfig{
		AnonLimit: cfg.AnonRateLimit,
		UserLimit: cfg.UserRateLimit,
		Window:    cfg.ThrottleWindow,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Router(),
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	rdb.Close()
	db.Close()
	log.Info("stopped")
}
