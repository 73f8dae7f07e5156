package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jotpad/jotpad/internal/auth"
	"github.com/jotpad/jotpad/internal/config"
	"github.com/jotpad/jotpad/internal/database"
	"github.com/jotpad/jotpad/internal/note/handler"
	"github.com/jotpad/jotpad/internal/note/repository"
	"github.com/jotpad/jotpad/internal/note/service"
	"github.com/jotpad/jotpad/pkg/logger"
	"github.com/jotpad/jotpad/pkg/metrics"
	"github.com/jotpad/jotpad/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v auth_gate=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Auth.RequireForWrite)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so both the list cache and the distributed rate
	// limiter can use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Note repository: Mongo when configured, in-memory otherwise. The Mongo
	// connection is retried with backoff to tolerate startup races.
	var repo repository.Repository
	var mongoHealthy bool
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			c, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				client = c
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if client != nil {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("notes")
			repo = repository.NewMongoRepo(col)
			mongoHealthy = true
			logger.Infof("using MongoDB note repository (db=%s)", cfg.MongoDB.Database)
		}
	}
	if repo == nil {
		repo = repository.NewMemoryRepo()
		logger.Warnf("using in-memory note repository; notes will not survive restarts")
	}
	if redisClient != nil {
		repo = repository.NewCachedRepo(repo, redisClient, "", 5*time.Minute)
		logger.Infof("note list cache enabled")
	}

	svc := service.New(repo)

	// Optional write gate: reads and the watch stream are always open, the
	// write path requires a valid bearer token only when configured.
	var writeGuards []gin.HandlerFunc
	if cfg.Auth.RequireForWrite {
		ver, err := auth.NewHMACVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			logger.Fatalf("AUTH_REQUIRE_FOR_WRITE is set but the verifier cannot start: %v", err)
		}
		writeGuards = append(writeGuards, middleware.AuthMiddleware(ver))
		logger.Infof("write path requires authentication")
	}

	handler.RegisterNoteRoutes(r, svc, writeGuards...)
	handler.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the configured dependencies are reachable
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if cfg.MongoDB.URI != "" {
			deps["mongo"] = mongoHealthy
			if !mongoHealthy {
				ready = false
			}
		} else {
			deps["mongo"] = true
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil && cfg.RateLimit.UseRedis {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting note service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	// block until interrupted, then drain and let the deferred disconnects run
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
