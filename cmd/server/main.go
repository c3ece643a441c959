package main

import (
	"log"

	"github.com/calltrack/dnc-registry/internal/config"
	"github.com/calltrack/dnc-registry/internal/database"
	"github.com/calltrack/dnc-registry/internal/handler"
	"github.com/calltrack/dnc-registry/internal/middleware"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/internal/session"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Sign-out revocation list
	revocations, err := session.NewRedisRevocationStore(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize revocation store: %v", err)
	}
	defer revocations.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	reasonRepo := repository.NewReasonRepository(db)
	dncRepo := repository.NewDNCRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, revocations, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	dncService := service.NewDNCService(dncRepo, reasonRepo, cfg.PhoneRule)
	reasonService := service.NewReasonService(reasonRepo)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(dncRepo, reasonRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	dncHandler := handler.NewDNCHandler(dncService)
	reasonHandler := handler.NewReasonHandler(reasonService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	// Every request passes the access policy; the auth surface stays open
	router.Use(middleware.AccessControl(cfg.JWTSecret, revocations))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Any authenticated role
		api.GET("/dnc", dncHandler.List)
		api.POST("/dnc", dncHandler.Create)
		api.GET("/dnc/:id", dncHandler.Get)
		api.PUT("/dnc/:id", dncHandler.Update)
		api.DELETE("/dnc/:id", dncHandler.Delete)
		api.GET("/reasons", reasonHandler.List)

		// Admin only
		admin := api.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/reasons", reasonHandler.Create)
			admin.DELETE("/reasons/:id", reasonHandler.Delete)
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.GET("/dashboard/stats", reportHandler.Stats)
			admin.GET("/reports", reportHandler.Report)
		}
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
