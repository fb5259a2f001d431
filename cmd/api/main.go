package main

import (
	"fmt"
	"marketplace-settlement/internal/cache"
	"marketplace-settlement/internal/client"
	"marketplace-settlement/internal/config"
	"marketplace-settlement/internal/repository"
	"marketplace-settlement/internal/server"
	"marketplace-settlement/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg.Log)
	defer logger.Sync()

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	paymentClient := client.NewPaymentClient(&cfg.Provider)

	var ruleCache *cache.RuleCache
	if cfg.Redis.Addr != "" {
		redisClient := client.NewRedisClient(&cfg.Redis)
		ruleCache = cache.NewRuleCache(redisClient, time.Duration(cfg.Redis.RuleCacheTTL)*time.Second)
	} else {
		logger.Warn("redis not configured, commission rules read from database per request")
	}

	orderRepo := repository.NewOrderRepository(db)
	ruleRepo := repository.NewCommissionRuleRepository(db)
	listingRepo := repository.NewListingRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	commissionService := service.NewCommissionService(orderRepo, ruleRepo, listingRepo, ruleCache, logger)
	paymentService := service.NewPaymentService(paymentClient, orderRepo, webhookEventRepo, logger)
	orderService := service.NewOrderService(orderRepo)

	srv := server.NewServer(commissionService, paymentService, orderService, cfg.Auth.JWTSecret, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(cfg *config.Log) *zap.Logger {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zapCfg.Level = level
	}

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
