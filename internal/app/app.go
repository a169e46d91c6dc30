package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHTTP "yamdb/internal/controller/http"
	"yamdb/internal/repo/codestore"
	"yamdb/internal/repo/persistent"
	"yamdb/internal/usecase"
	"yamdb/pkg/cache"
	"yamdb/pkg/config"
	"yamdb/pkg/database"
	"yamdb/pkg/jwt"
	"yamdb/pkg/logger"
	"yamdb/pkg/middleware"
	"yamdb/pkg/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without email delivery)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		queueClient: queueClient,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	categoryRepo := persistent.NewCategoryRepository(a.db)
	genreRepo := persistent.NewGenreRepository(a.db)
	titleRepo := persistent.NewTitleRepository(a.db)
	reviewRepo := persistent.NewReviewRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	codeStore := codestore.NewRedisStore(a.redisClient, a.cfg.ConfirmationCodeTTL)

	// Use cases
	var mailQueue usecase.MailQueue
	if a.queueClient != nil {
		mailQueue = a.queueClient
	}
	authUseCase := usecase.NewAuthUseCase(userRepo, codeStore, mailQueue, a.jwtService, a.cfg.ReservedUsername, a.log)
	userUseCase := usecase.NewUserUseCase(userRepo, a.cfg.ReservedUsername, a.log)
	catalogUseCase := usecase.NewCatalogUseCase(categoryRepo, genreRepo, a.log)
	titleUseCase := usecase.NewTitleUseCase(titleRepo, categoryRepo, genreRepo, a.log)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, titleRepo, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, reviewRepo, a.log)

	// HTTP handlers
	authHandler := apiHTTP.NewAuthHandler(authUseCase, a.log)
	userHandler := apiHTTP.NewUserHandler(userUseCase, a.log)
	categoryHandler := apiHTTP.NewCategoryHandler(catalogUseCase, a.log)
	genreHandler := apiHTTP.NewGenreHandler(catalogUseCase, a.log)
	titleHandler := apiHTTP.NewTitleHandler(titleUseCase, a.log)
	reviewHandler := apiHTTP.NewReviewHandler(reviewUseCase, a.log)
	commentHandler := apiHTTP.NewCommentHandler(commentUseCase, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute))
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/token", authHandler.GetToken)
	}

	// Every resource route sees the requester when a token is supplied;
	// handlers decide between 401 and 403 per method.
	api := v1.Group("", middleware.OptionalAuthMiddleware(a.jwtService, userRepo))
	{
		api.GET("/categories", categoryHandler.ListCategories)
		api.POST("/categories", categoryHandler.CreateCategory)
		api.DELETE("/categories/:slug", categoryHandler.DeleteCategory)

		api.GET("/genres", genreHandler.ListGenres)
		api.POST("/genres", genreHandler.CreateGenre)
		api.DELETE("/genres/:slug", genreHandler.DeleteGenre)

		api.GET("/titles", titleHandler.ListTitles)
		api.POST("/titles", titleHandler.CreateTitle)
		api.GET("/titles/:title_id", titleHandler.GetTitle)
		api.PATCH("/titles/:title_id", titleHandler.UpdateTitle)
		api.DELETE("/titles/:title_id", titleHandler.DeleteTitle)

		api.GET("/titles/:title_id/reviews", reviewHandler.ListReviews)
		api.POST("/titles/:title_id/reviews", reviewHandler.CreateReview)
		api.GET("/titles/:title_id/reviews/:review_id", reviewHandler.GetReview)
		api.PATCH("/titles/:title_id/reviews/:review_id", reviewHandler.UpdateReview)
		api.DELETE("/titles/:title_id/reviews/:review_id", reviewHandler.DeleteReview)

		api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.ListComments)
		api.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.CreateComment)
		api.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.GetComment)
		api.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.UpdateComment)
		api.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.DeleteComment)

		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users/me", userHandler.Me)
		api.PATCH("/users/me", userHandler.UpdateMe)
		api.GET("/users/:username", userHandler.GetUser)
		api.PATCH("/users/:username", userHandler.UpdateUser)
		api.DELETE("/users/:username", userHandler.DeleteUser)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("YaMDb API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
