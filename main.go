package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KuzenkovAG/yatube-final/cache"
	"github.com/KuzenkovAG/yatube-final/config"
	"github.com/KuzenkovAG/yatube-final/database"
	"github.com/KuzenkovAG/yatube-final/handlers"
	"github.com/KuzenkovAG/yatube-final/routes"
	"github.com/KuzenkovAG/yatube-final/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	log.Println("Starting Yatube server...")

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	client, connErr := connectMongo(cfg.MongoURI)
	if connErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", connErr)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}()

	mongoStore := store.NewMongo(client.Database(cfg.MongoDB))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("Failed to create indexes: ", err)
	}
	cancel()

	// ===== FEED CACHE =====
	feedCache := newCache(cfg)

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(mongoStore, cfg)
	router := routes.Setup(h, mongoStore, feedCache, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	log.Println("Server stopped gracefully")
}

func connectMongo(uri string) (client *mongo.Client, err error) {
	for i := 1; i <= 3; i++ {
		client, err = database.Connect(uri)
		if err == nil {
			return client, nil
		}
		log.Printf("MongoDB connection attempt %d failed: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

// newCache prefers Redis so the feed staleness window is shared
// between replicas; without a Redis address it degrades to a
// process-local TTL map.
func newCache(cfg config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, using in-memory feed cache")
		return cache.NewMemory()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed (%v), using in-memory feed cache", err)
		return cache.NewMemory()
	}

	log.Printf("Feed cache on Redis at %s", cfg.RedisAddr)
	return cache.NewRedis(client)
}
