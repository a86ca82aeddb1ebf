package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"seodesk/backend/internal/api/handler"
	"seodesk/backend/internal/complaint"
	"seodesk/backend/internal/eventhub"
	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/optimization"
	"seodesk/backend/internal/storage"
	"seodesk/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(log *logger.Logger) (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "seodesk"),
		envOr("DB_PASSWORD", "seodesk"),
		envOr("DB_NAME", "seodeskdb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect PostgreSQL", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal("failed to connect Redis", "error", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Network{},
		&models.Optimization{},
		&models.Complaint{},
		&models.Response{},
	)
	if err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	log.Info("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file loaded")
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Printf("failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting seodesk backend")

	db, rdb := setupDependencies(log)
	s := storage.NewStorageService(db, rdb, log)

	hub := eventhub.NewHub(s, log)

	// Telegram is optional: without a token, notifications are skipped
	// and everything else works.
	var notifier *telegram.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		notifier, err = telegram.NewNotifier(token, s, log)
		if err != nil {
			log.Fatal("failed to start telegram notifier", "error", err)
		}
	} else {
		log.Warn("TELEGRAM_BOT_TOKEN not set, notifications disabled")
	}

	var complaintNotifier complaint.Notifier
	var optimizationNotifier optimization.Notifier
	if notifier != nil {
		complaintNotifier = notifier
		optimizationNotifier = notifier
	}

	complaints := complaint.NewService(s, complaintNotifier, log)
	optimizations := optimization.NewService(s, optimizationNotifier, log)

	go hub.Run()
	if notifier != nil {
		go notifier.Run()
	}

	jwtSecret := []byte(envOr("JWT_SECRET", "dev-only-secret"))
	h := handler.NewHandler(complaints, optimizations, s, hub, log, jwtSecret)

	r := gin.Default()
	r.POST("/api/token", h.IssueToken)

	api := r.Group("/api", h.AuthRequired())
	{
		api.POST("/networks/:id/complaints", h.CreateProjectComplaint)
		api.POST("/optimizations/:id/complaints", h.CreateOptimizationComplaint)
		api.POST("/optimizations/:id/responses", h.AddOptimizationResponse)
		api.POST("/complaints/:id/responses", h.AddComplaintResponse)
		api.POST("/complaints/:id/review", h.StartReview)
		api.POST("/complaints/:id/dismiss", h.DismissComplaint)
		api.POST("/complaints/:id/resolve", h.ResolveComplaint)
		api.GET("/optimizations/:id", h.GetOptimization)
		api.POST("/optimizations/:id/close", h.CloseOptimization)
		api.GET("/optimizations/:id/timeline", h.GetTimeline)
	}
	r.GET("/ws", h.AuthRequired(), h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal("server stopped", "error", server.ListenAndServe())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
