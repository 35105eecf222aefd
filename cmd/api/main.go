package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-shop-auth/internal/infrastructure/jwt"
	"github.com/go-shop-auth/internal/infrastructure/postgres"
	redisinfra "github.com/go-shop-auth/internal/infrastructure/redis"
	"github.com/go-shop-auth/internal/infrastructure/smtp"
	"github.com/go-shop-auth/internal/infrastructure/sns"
	transporthttp "github.com/go-shop-auth/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	setupLogger(cfg)
	ctx := context.Background()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// The dynamo client is shared by the account and OTP stores when either uses it.
	var dynamoClient *dynamodb.Client
	if cfg.AccountStore == "dynamo" || cfg.KVStore == "dynamo" {
		c, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			log.Fatalf("dynamo client: %v", err)
		}
		dynamo.Bootstrap(ctx, c, cfg.DynamoTables)
		dynamoClient = c
	}

	deps := &transporthttp.Deps{JWTProvider: jwtProvider}

	switch cfg.AccountStore {
	case "dynamo":
		deps.Buyers = dynamo.NewBuyerRepo(dynamoClient, cfg.DynamoTables.Buyers)
		deps.Sellers = dynamo.NewSellerRepo(dynamoClient, cfg.DynamoTables.Sellers, cfg.DynamoTables.Shops)
	case "postgres":
		db, err := postgres.Open(cfg)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		deps.Buyers = postgres.NewBuyerRepo(db)
		deps.Sellers = postgres.NewSellerRepo(db)
	default:
		log.Fatalf("unknown ACCOUNT_STORE %q", cfg.AccountStore)
	}

	switch cfg.KVStore {
	case "redis":
		client, err := redisinfra.NewClient(ctx, cfg)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		deps.KV = redisinfra.NewStore(client)
	case "dynamo":
		deps.KV = dynamo.NewKVStore(dynamoClient, cfg.DynamoTables.OTPState)
	default:
		log.Fatalf("unknown KV_STORE %q", cfg.KVStore)
	}

	mailer, err := smtp.NewMailer(cfg)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	deps.Channel = mailer
	if cfg.SMSOTPCopy {
		if sender, err := sns.NewSender(ctx, cfg); err == nil {
			deps.Channel = sns.NewMirror(mailer, sender)
		} else {
			log.Printf("WARN: SNS sender not available, OTPs go by email only: %v", err)
		}
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Auth service starting on :%s (env=%s, accounts=%s, otp=%s)",
			cfg.AppPort, cfg.AppEnv, cfg.AccountStore, cfg.KVStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.AppEnv == "production" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}
