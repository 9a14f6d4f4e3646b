package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-social/backend/internal/cache"
	"todo-social/backend/internal/config"
	"todo-social/backend/internal/database"
	"todo-social/backend/internal/handlers"
	"todo-social/backend/internal/middleware"
	"todo-social/backend/internal/models"
	"todo-social/backend/internal/monitoring"
	"todo-social/backend/internal/services"
	"todo-social/backend/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	pool, err := database.NewDatabasePool(&database.PoolConfig{
		DSN:             cfg.GetDatabaseDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        logLevel,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	db := pool.DB

	if err := db.AutoMigrate(&models.User{}, &models.Todo{}, &models.Message{}, &models.Friend{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	var (
		redisCache *cache.RedisCache
		jobQueue   *worker.JobQueue
		jobWorker  *worker.Worker
	)

	if cfg.Redis.Enabled {
		redisCache = cache.NewRedisCache(&cache.CacheConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := redisCache.Health(); err != nil {
			log.Printf("Redis unavailable, running without cache and background jobs: %v", err)
			redisCache.Close()
			redisCache = nil
		}
	}

	if redisCache != nil {
		jobQueue = worker.NewJobQueue(redisCache.Client())
		jobWorker = worker.NewWorker(worker.WorkerConfig{
			RedisClient: redisCache.Client(),
			Queues:      cfg.Worker.Queues,
		})
		registerJobHandlers(jobWorker)
		jobWorker.Start(cfg.Worker.Concurrency)
	}

	var todoService services.TodoService = services.NewTodoService()
	if redisCache != nil {
		todoService = services.NewCachedTodoService(todoService, redisCache)
	}

	userService := services.NewUserService(cfg.Auth.BCryptCost)
	friendService := services.NewFriendService()
	messageService := services.NewMessageService()
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	health := monitoring.NewHealthChecker()
	health.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if redisCache != nil {
		health.Register("redis", func(ctx context.Context) error {
			return redisCache.Health()
		})
	}

	var adminCache cache.Cache
	if redisCache != nil {
		adminCache = redisCache
	}

	router := setupRouter(cfg,
		handlers.NewUserHandler(db, userService),
		handlers.NewTodoHandler(db, todoService, jobQueue),
		handlers.NewFriendHandler(db, friendService),
		handlers.NewMessageHandler(db, messageService, jobQueue),
		handlers.NewLoginHandler(db, authService),
		handlers.NewAdminHandler(adminCache),
		health,
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.GetServerAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if jobWorker != nil {
		jobWorker.Stop()
	}
	if redisCache != nil {
		redisCache.Close()
	}
}

func setupRouter(
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	todoHandler *handlers.TodoHandler,
	friendHandler *handlers.FriendHandler,
	messageHandler *handlers.MessageHandler,
	loginHandler *handlers.LoginHandler,
	adminHandler *handlers.AdminHandler,
	health *monitoring.HealthChecker,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.Default())

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerMin:  cfg.RateLimit.RequestsPerMin,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
		})
		router.Use(limiter.Middleware())
	}

	api := router.Group("/api")
	{
		api.POST("/login", loginHandler.Login)
		api.GET("/health", health.Handler)

		api.POST("/user", userHandler.CreateAccount)
		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:userId", userHandler.GetUser)

		api.GET("/todo", todoHandler.GetTodos)
		api.POST("/todo", todoHandler.CreateTodo)
		api.PUT("/todo", todoHandler.UpdateTodo)
		api.DELETE("/todo", todoHandler.DeleteTodo)
		api.GET("/todo/:todoId", todoHandler.GetTodoByID)

		api.POST("/friend", friendHandler.AddFriend)
		api.DELETE("/friend", friendHandler.RemoveFriend)
		api.GET("/friend/followed", friendHandler.GetFollowing)
		api.GET("/friend/following", friendHandler.GetFollowers)

		api.POST("/message", messageHandler.SendMessage)
		api.GET("/message", messageHandler.GetMessages)
		api.GET("/message/inbox", messageHandler.GetInbox)
		api.PUT("/message/read", messageHandler.MarkMessageAsRead)
		api.GET("/messages/:messageId", messageHandler.GetMessage)

		admin := api.Group("/admin", middleware.RequireAuth(cfg.Auth.JWTSecret))
		{
			admin.GET("/metrics", monitoring.MetricsHandler)
			admin.GET("/cache", adminHandler.CacheStats)
		}
	}

	return router
}

func registerJobHandlers(w *worker.Worker) {
	w.RegisterHandler(worker.JobTypeDueReminder, func(ctx context.Context, job *worker.Job) error {
		log.Printf("Todo %v for user %v is due: %v",
			job.Payload["todo_id"], job.Payload["user_id"], job.Payload["title"])
		return nil
	})

	w.RegisterHandler(worker.JobTypeReadReceipt, func(ctx context.Context, job *worker.Job) error {
		log.Printf("Read receipt recorded for message %v", job.Payload["message_id"])
		return nil
	})
}
