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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptstash/promptstash/internal/apiserver/cache"
	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/apiserver/handler"
	"github.com/promptstash/promptstash/internal/apiserver/middleware"
	"github.com/promptstash/promptstash/internal/auth/jwt"
	"github.com/promptstash/promptstash/internal/common/config"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/storage"
	"github.com/promptstash/promptstash/pkg/logger"
	"github.com/promptstash/promptstash/pkg/metrics"
	"github.com/promptstash/promptstash/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "PromptStash API Server",
		Long:  `PromptStash API Server provides the workspace-scoped knowledge base API`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	if cfg.I18n.Path != "" {
		if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
			zapLogger.Warn("failed to load translations", zap.String("path", cfg.I18n.Path), zap.Error(err))
		}
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := database.InitSuperAdmin(db, &cfg.SuperAdmin); err != nil {
		zapLogger.Fatal("failed to seed super admin", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize JWT service", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.ConnectMinio(ctx, &cfg.Storage, zapLogger)
	cancel()
	if err != nil {
		zapLogger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	c, err := cache.NewCache(&cfg.Cache)
	if err != nil {
		zapLogger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer c.Close()

	m := metrics.New(cfg.Metrics)
	h := handler.NewHandler(db, jwtService, store, c, cfg, m, zapLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(m.Middleware())
	router.Use(middleware.LanguageMiddleware())
	if cfg.CORS != nil {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			ExposeHeaders:    cfg.CORS.ExposeHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	handler.RegisterRoutes(router, h, jwtService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
