package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-account-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-account-ledger/internal/adapter/http/router"
	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-account-ledger/internal/config"
	"github.com/api-sage/bank-account-ledger/internal/usecase/services"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	var cache redis.Cmdable
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, rate caching disabled: %v", err)
	} else {
		cache = redisClient
	}

	accountRepo := postgres.NewAccountRepository(db)
	operationRepo := postgres.NewOperationRepository(db)
	rateRepo := postgres.NewRateRepository(db)
	uow := postgres.NewUnitOfWork(db)

	rateService := services.NewRateService(rateRepo, cache, cfg.RateCacheTTL)
	ledgerService := services.NewLedgerService(accountRepo, operationRepo, uow, rateService, cfg.DefaultCurrency)

	handler := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash),
		controller.NewAccountController(ledgerService),
		controller.NewRateController(rateService),
	)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("server listening on %s", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}

	log.Println("server stopped")
}
