// @title Course Compass API
// @version 1.0
// @description Course catalog, AI course extraction, quizzes and a study assistant.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "course-compass/cmd/api/docs"
	"course-compass/internal/adapter"
	"course-compass/internal/adapter/llm"
	"course-compass/internal/cache"
	"course-compass/internal/config"
	"course-compass/internal/database"
	"course-compass/internal/handler"
	"course-compass/internal/logger"
	"course-compass/internal/middleware"
	"course-compass/internal/repository"
	"course-compass/internal/service"
	"course-compass/internal/validation"
)

const maxListLimit = 100

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	model, err := llm.NewModel(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator := llm.NewGenerator(model, llm.WithTimeout(cfg.LLM.Timeout))
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("timeout", cfg.LLM.Timeout))

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	resultRepo := repository.NewQuizResultRepository(db)
	chatRepo := repository.NewChatRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	authService, err := service.NewAuthService(userRepo, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	courseService := service.NewCourseService(courseRepo, generator, cacheAdapter, cfg.CacheTTLs.CourseExtraction)
	quizService := service.NewQuizService(generator, resultRepo, courseRepo, cacheAdapter)
	chatService := service.NewChatService(generator, chatRepo, courseRepo, txManager)
	dashboardService := service.NewDashboardService(courseRepo, resultRepo, cacheAdapter, cfg.CacheTTLs.Dashboard)

	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService, validator)
	courseHandler := handler.NewCourseHandler(courseService, validator)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	chatHandler := handler.NewChatHandler(chatService, validator)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		"cache":    cacheAdapter,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	protected := middleware.Protected(authService)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Get("/me", protected, authHandler.Me)
	auth.Get("/google/login", authHandler.GoogleLogin)
	auth.Get("/google/callback", authHandler.GoogleCallback)

	courses := api.Group("/courses", protected)
	courses.Post("/extract", courseHandler.ExtractCourse)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)
	courses.Patch("/:id/milestones/:index", middleware.ValidateIndexParam("index"), courseHandler.UpdateMilestone)

	quiz := api.Group("/quiz", protected)
	quiz.Post("/generate", quizHandler.GenerateQuiz)
	quiz.Post("/results", quizHandler.SaveResult)
	quiz.Get("/results", middleware.ValidateLimitQuery(maxListLimit), quizHandler.ListResults)

	chat := api.Group("/chat", protected)
	chat.Post("/", chatHandler.SendMessage)
	chat.Get("/history", middleware.ValidateLimitQuery(maxListLimit), chatHandler.GetHistory)
	chat.Delete("/history", chatHandler.ClearHistory)

	api.Get("/dashboard", protected, dashboardHandler.GetDashboard)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
