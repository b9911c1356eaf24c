package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khanonymous/relay-backend/internal/config"
	"github.com/khanonymous/relay-backend/internal/gateway"
	"github.com/khanonymous/relay-backend/internal/handler"
	"github.com/khanonymous/relay-backend/internal/middleware"
	"github.com/khanonymous/relay-backend/internal/migration"
	"github.com/khanonymous/relay-backend/internal/repository"
	"github.com/khanonymous/relay-backend/internal/routes"
	"github.com/khanonymous/relay-backend/internal/service"
	pkgcache "github.com/khanonymous/relay-backend/pkg/cache"
	"github.com/khanonymous/relay-backend/pkg/i18n"
	"github.com/khanonymous/relay-backend/pkg/jwt"
	pkglogger "github.com/khanonymous/relay-backend/pkg/logger"
	pkgredis "github.com/khanonymous/relay-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("env_files", dotenvFiles).
		Msg("starting relay backend")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; the service degrades to uncached queries without it
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	var cacheService pkgcache.Service
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("redis unavailable, continuing without cache")
	} else {
		cacheService = pkgcache.NewService(redisClient)
	}

	// i18n bundle with built-in messages, overridable from the i18n dir
	bundle := i18n.NewBundle(i18n.FromCode(cfg.Relay.DefaultLanguage))
	for locale, msgs := range i18n.DefaultMessages() {
		bundle.LoadMessages(locale, msgs)
	}
	if _, err := os.Stat("i18n"); err == nil {
		if err := bundle.LoadDir("i18n"); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("i18n dir load failed")
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	corrRepo := repository.NewCorrelationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	clickRepo := repository.NewClickRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	gw := gateway.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.APIKey)
	directoryService := service.NewDirectoryService(userRepo, cfg.Relay.DefaultLanguage)
	relayService := service.NewRelayService(
		userRepo, blockRepo, corrRepo, reportRepo, clickRepo,
		gw, bundle, cacheService, cfg.Relay.DefaultLanguage,
	)
	statsService := service.NewStatsService(statsRepo, clickRepo, userRepo, cacheService)

	jwtManager := jwt.NewManager(cfg.Admin.JWTSecret, 24*time.Hour)

	// Handlers
	eventHandler := handler.NewEventHandler(relayService)
	userHandler := handler.NewUserHandler(relayService, directoryService, statsService)
	adminHandler := handler.NewAdminHandler(statsService, directoryService, reportRepo, cfg.Relay.TopLimit, cfg.Relay.ReportsLimit)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	if redisClient != nil && env == "production" {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "relay-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, eventHandler, userHandler, adminHandler, jwtManager, cfg)

	if sqlDB, err := db.DB(); err == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.GetLogger().Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if cfg.App.Env == "local" || cfg.App.Env == "development" {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
