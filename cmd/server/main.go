package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Sushanthnayak-eng/FashionCart/internal/auth"
	"github.com/Sushanthnayak-eng/FashionCart/internal/cart"
	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
	h "github.com/Sushanthnayak-eng/FashionCart/internal/http"
	"github.com/Sushanthnayak-eng/FashionCart/internal/mongodb"
	"github.com/Sushanthnayak-eng/FashionCart/internal/objectstore"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

type Config struct {
	HTTPPort        string
	JWTSecret       string
	CatalogDBPath   string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	KafkaBrokers    []string
	UploadDir       string
	MigrationsDir   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid POSTGRES_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "catalog.db"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "fashioncart"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		PostgresHost:    getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:    pgPort,
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:      getEnv("POSTGRES_DB", "orders"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "internal"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Catalog on SQLite
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.MigrationsDir + "/catalog/migrations"); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Printf("Catalog database ready at %s", cfg.CatalogDBPath)

	// Carts and users on MongoDB
	mongoDB, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	if err := cart.CreateIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	if err := auth.CreateIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Cart cache on Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Orders on Postgres
	pgCreds := &order.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPass,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsDir + "/order/migrations",
	}
	orderRepo, err := order.NewRepository(pgCreds)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(pgCreds); err != nil {
		log.Fatalf("Failed to run order migrations: %v", err)
	}
	log.Printf("Connected to Postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)

	images, err := objectstore.NewDiskStore(cfg.UploadDir, "/static")
	if err != nil {
		log.Fatalf("Failed to set up upload dir: %v", err)
	}

	catalogService := catalog.NewService(catalogRepo)
	defer catalogService.Close()
	cartService := cart.NewService(cart.NewMongoRepository(mongoDB), cart.NewRedisCache(redisClient))
	orderService := order.NewService(orderRepo)
	defer orderService.Close()
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authService := auth.NewService(auth.NewMongoRepository(mongoDB), tokens)

	// Outbox poller publishes order events to Kafka until shutdown.
	pollerCtx, stopPoller := context.WithCancel(ctx)
	poller := order.NewOutboxPoller(orderRepo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)
	defer poller.Close()
	defer stopPoller()

	router := h.NewRouter(h.RouterConfig{
		Tokens:         tokens,
		Auth:           h.NewAuthHandler(authService, cfg.RequestTimeout),
		Products:       h.NewProductHandler(catalogService, images, cfg.RequestTimeout),
		Cart:           h.NewCartHandler(cartService, catalogService, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(orderService, cartService, cfg.RequestTimeout),
		Orders:         h.NewOrdersHandler(orderService, cfg.RequestTimeout),
		StaticDir:      images.Dir(),
		RequestTimeout: middleware.Timeout(cfg.RequestTimeout),
	})

	srv := &http.Server{
		Addr:        ":" + cfg.HTTPPort,
		Handler:     otelhttp.NewHandler(router, "fashioncart"),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("FashionCart server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
