package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/handlers"
	"jobboard/internal/pdf"
	"jobboard/internal/repositories"
	"jobboard/internal/routes"
	"jobboard/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "jobboard/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verifRepo := repositories.NewVerificationRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTLMin)*time.Minute)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	otpService := services.NewOTPService(
		verifRepo,
		userRepo,
		emailService,
		authService,
		time.Duration(cfg.OTP.TTLMinutes)*time.Minute,
		cfg.OTP.SuperAdminEmails,
	)
	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, jobRepo)

	// Telegram-уведомления стаффу; nil если не сконфигурировано
	notifier := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.StaffChatID)

	pdfGen := pdf.NewApplicantListGenerator(cfg.Files.RootDir)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, userRepo, pdfGen, notifier)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(otpService, userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.JWT.Secret),
		authHandler,
		userHandler,
		jobHandler,
		categoryHandler,
		applicationHandler,
		favoriteHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
