package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/backend/internal/config"
	"github.com/inkwell-app/inkwell/backend/internal/handlers"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
	"github.com/inkwell-app/inkwell/backend/internal/middleware"
	"github.com/inkwell-app/inkwell/backend/internal/repository"
	"github.com/inkwell-app/inkwell/backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting inkwell api server",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	entryRepo := repository.NewEntryRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	// Services
	statsCache := service.NewStatisticsCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	streakService := service.NewStreakService(profileRepo, entryRepo, statsCache)
	statisticsService := service.NewStatisticsService(entryRepo, profileRepo, statsCache)

	// Handlers
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)
	streakHandler := handlers.NewStreakHandler(streakService)
	entriesHandler := handlers.NewEntriesHandler(streakService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Owner())
	{
		v1.GET("/statistics", statisticsHandler.GetStatistics)
		v1.POST("/entries/recorded", entriesHandler.RecordWritten)
		v1.POST("/streaks/recalculate", streakHandler.Recalculate)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
