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

	"github.com/placeprep/backend/config"
	"github.com/placeprep/backend/database"
	adminctrl "github.com/placeprep/backend/internal/controller/admin"
	studentctrl "github.com/placeprep/backend/internal/controller/student"
	"github.com/placeprep/backend/internal/logger"
	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
	"github.com/placeprep/backend/internal/service"
)

// @title Campus Placement Aptitude API
// @version 1.0
// @description Timed aptitude assessments with question bank composition, resume-derived AI questions, autosave and one-shot scoring.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewProfileRepository,
			repository.NewResumeRepository,
		),

		fx.Provide(
			service.NewGeminiQuestionService,
			service.NewResumeService,
			service.NewQuestionSource,
			service.NewAttemptService,
			service.NewQuestionService,
		),

		fx.Provide(
			studentctrl.NewController,
			adminctrl.NewController,
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

func NewGinEngine() *gin.Engine {
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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires controllers onto the engine and
// manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	studentCtrl *studentctrl.Controller,
	adminCtrl *adminctrl.Controller,
) {
	studentCtrl.RegisterRoutes(router)
	adminCtrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Aptitude API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
		&model.AptitudeQuestion{},
		&model.AptitudeAttempt{},
		&model.AptitudeAttemptDetail{},
		&model.StudentProfile{},
		&model.Resume{},
		&model.ResumeAnalysis{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	// One live attempt per user, enforced at the database as well as in
	// the create path.
	err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_attempt_per_user
		 ON aptitude_attempts (user_id) WHERE status = 'IN_PROGRESS'`,
	).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to create active-attempt index")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
