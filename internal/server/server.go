package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rollingpaper/internal/auth"
	"rollingpaper/internal/config"
	"rollingpaper/internal/handler"
	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"
	"rollingpaper/internal/repository"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

// Open connects to Postgres and applies the pool settings.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to get DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Board{}, &model.Message{}, &model.LoginLog{}); err != nil {
		return fmt.Errorf("❌ migration failed: %w", err)
	}
	return nil
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Info("✅ Connected to database", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))

	if cfg.Server.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Info("✅ Schema migrated")
	}

	gin.SetMode(cfg.Server.GinMode)
	return &Server{
		Engine: NewRouter(db, cfg, log),
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.RequestLogger(log))

	// Repositories
	boardRepo := repository.NewBoardRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	loginLogRepo := repository.NewLoginLogRepository(db)

	// Services
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authz := service.NewAuthorizer(cfg.Admin.Emails)
	boardService := service.NewBoardService(boardRepo, authz, log)
	messageService := service.NewMessageService(boardRepo, messageRepo, authz, log)
	loginService := service.NewLoginService(loginLogRepo, auth.NewGoogleVerifier(cfg.Auth.GoogleClientID), tokens, authz, log)

	// Handlers
	authHandler := handler.NewAuthHandler(loginService)
	boardHandler := handler.NewBoardHandler(boardService)
	messageHandler := handler.NewMessageHandler(messageService)
	adminHandler := handler.NewAdminHandler(boardService, loginService)

	// Ops routes
	r.GET("/healthz", healthz(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/auth/google", authHandler.GoogleSignIn)
	r.GET("/catalog", handler.Catalog)
	r.POST("/boards/:id/access", boardHandler.CheckAccess)
	r.POST("/boards/:id/messages/:messageId/hearts", messageHandler.AddHeart)

	// Anonymous visitors allowed; identity attached when present
	visitor := r.Group("/")
	visitor.Use(middleware.OptionalAuth(tokens))
	{
		visitor.GET("/boards/:id", boardHandler.GetByID)
		visitor.GET("/boards/:id/messages", messageHandler.List)
		visitor.POST("/boards/:id/messages", messageHandler.Create)
	}

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		authorized.GET("/auth/me", authHandler.Me)

		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/mine", boardHandler.Mine)
		authorized.PATCH("/boards/:id/settings", boardHandler.UpdateSettings)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		authorized.PUT("/boards/:id/messages/:messageId", messageHandler.Update)
		authorized.DELETE("/boards/:id/messages/:messageId", messageHandler.Delete)

		authorized.GET("/admin/boards", adminHandler.ListBoards)
		authorized.GET("/admin/logins", adminHandler.ListLogins)
		authorized.DELETE("/admin/boards/:id", adminHandler.DeleteBoard)
	}

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      s.Engine,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info("🚀 Server running", zap.String("port", s.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("❌ failed to listen: %w", err)
	case <-quit:
	}
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("❌ server forced to shutdown: %w", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Log.Info("✅ Server exited properly")
	return nil
}
