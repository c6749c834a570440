package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizgem/config"
	"quizgem/database"
	_ "quizgem/docs" // Swagger docs - auto-generated
	"quizgem/internal/controller"
	"quizgem/internal/identity"
	"quizgem/internal/logger"
	"quizgem/internal/middleware"
	"quizgem/internal/model"
	"quizgem/internal/repository"
	"quizgem/internal/service"
)

// @title QuizGem API
// @version 1.0
// @description Quiz-hosting backend with LLM-generated questions, game sessions and per-quiz leaderboards.
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			identity.NewClient,
			func(c *identity.Client) service.IdentityProvider { return c },
		),

		// Repositories Layer
		fx.Provide(
			repository.NewAccountRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewHistoryRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewQuizGenerator,
			service.NewQuizService,
			service.NewGameService,
			service.NewSummaryService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewQuizController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	authCtrl *controller.AuthController,
	quizCtrl *controller.QuizController,
) {
	guard := middleware.RequireAuth(authSvc)

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/login", authCtrl.Login)
		authGroup.GET("/callback", authCtrl.Callback)
		authGroup.GET("/logout", guard, authCtrl.Logout)
		authGroup.GET("/refresh-token", guard, authCtrl.RefreshToken)
	}

	quizGroup := router.Group("/quiz")
	{
		quizGroup.GET("/find/topics", quizCtrl.GetTopics)

		quizGroup.POST("", guard, quizCtrl.CreateQuiz)
		quizGroup.GET("", guard, quizCtrl.GetAllQuizzes)
		quizGroup.GET("/:id", guard, quizCtrl.GetQuiz)
		quizGroup.GET("/:id/startOrContinue", guard, quizCtrl.StartOrContinue)
		quizGroup.POST("/:id/answer", guard, quizCtrl.AnswerQuiz)
		quizGroup.POST("/:id/finish", guard, quizCtrl.FinishQuiz)
		quizGroup.GET("/:id/summary", guard, quizCtrl.GetSummary)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizGem API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Quiz{},
		&model.Question{},
		&model.History{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
