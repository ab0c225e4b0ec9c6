package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"nextalk-server/internal/config"
	"nextalk-server/internal/push"
	"nextalk-server/internal/queue"
	"nextalk-server/internal/repository"
	"nextalk-server/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	messagingClient, err := config.NewMessagingClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize FCM client: %v", err)
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid Redis URL: %v", err)
	}

	tokenRepo := repository.NewDeviceTokenRepository(db)
	handler := worker.NewDeliveryHandler(tokenRepo, push.NewFCMSender(messagingClient))

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypePushDeliver, handler.ProcessTask)

	log.Printf("Delivery worker starting with concurrency %d", cfg.WorkerConcurrency)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}
}
