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

	"restaurant-service/config"
	"restaurant-service/internal/api"
	"restaurant-service/internal/broker"
	"restaurant-service/internal/redisclient"
	"restaurant-service/internal/seed"
	"restaurant-service/internal/service"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"
	"restaurant-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting restaurant service")

	tp, err := util.InitTracer("restaurant-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// The menu cache is an optimization; the service runs without Redis.
	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Redis unavailable, menu reads go straight to the database: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	menuService := service.NewMenuService(db, redisClient)
	reservationService := service.NewReservationService(db, eventPublisher)
	orderService := service.NewOrderService(db, eventPublisher,
		cfg.Business.DeliveryCharge, cfg.Business.HandlingCharge)

	// One-time seed, gated on an empty category table. Runs to completion
	// before the server accepts requests.
	seeded, err := seed.Run(context.Background(), db)
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	if seeded && redisClient != nil {
		if err := redisClient.InvalidateMenu(context.Background()); err != nil {
			log.Printf("Failed to invalidate menu cache after seed: %v", err)
		}
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	kitchenConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	kitchenWorker := worker.NewKitchenWorker(kitchenConsumer)
	go func() {
		if err := kitchenWorker.Start(workerCtx); err != nil {
			log.Printf("Kitchen worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(menuService, reservationService, orderService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	kitchenWorker.Stop()

	log.Println("Server exited")
}
