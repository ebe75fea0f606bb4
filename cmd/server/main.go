package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_rating_v1/internal/config"
	"store_rating_v1/internal/controller"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/internal/router"
	"store_rating_v1/internal/service"
	"store_rating_v1/internal/task"
	"store_rating_v1/pkg/cache"
	"store_rating_v1/pkg/credential"
	"store_rating_v1/pkg/database"
)

// @title Store Rating API
// @version 1.0
// @description Users rate stores, owners follow their feedback, administrators manage the platform.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := config.NewLogger(cfg.Log)

	// 1. database
	db := initDatabase(cfg, log)

	// 2. dependencies
	deps, err := initDependencies(cfg, db, log)
	if err != nil {
		log.Fatalf("init dependencies: %v", err)
	}

	// 3. scheduled tasks
	reporter := initTasks(cfg, deps, log)

	// 4. routes
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:        log,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Authenticator: deps.Services.Auth,
	})

	// 5. serve until signalled
	startServer(cfg.Server, r, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	reporter.Stop(ctx)
	if err := database.Close(db); err != nil {
		log.WithError(err).Warn("close database")
	}
	log.Info("server exited")
}

// ==================== dependency container ====================

// Dependencies wiring of every layer
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories repository set
type Repositories struct {
	User   repository.UserRepository
	Store  repository.StoreRepository
	Rating repository.RatingRepository
	Stats  repository.StatsRepository
}

// Services service set
type Services struct {
	Auth   *service.AuthService
	User   *service.UserService
	Store  *service.StoreService
	Rating *service.RatingService
	Stats  *service.StatsService
}

// ==================== init ====================

func initDatabase(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := database.InitDB(database.Options{
		DSN:    cfg.Database.DSN,
		LogSQL: cfg.Database.LogSQL,
	}, log, model.AllModels()...)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	return db
}

func initDependencies(cfg *config.Config, db *gorm.DB, log *logrus.Logger) (*Dependencies, error) {
	// -------- repositories --------
	repos := initRepositories(db)

	// -------- credentials --------
	tokens, err := credential.NewTokenManager(credential.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}
	hasher := credential.NewPasswordHasher(cfg.Auth.BcryptCost)

	revoked, err := cache.NewRevocationStore(context.Background(), cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Addr == "" {
		log.Warn("redis not configured, revoked tokens are kept in memory")
	}

	// -------- services --------
	services := &Services{
		Auth:   service.NewAuthService(repos.User, hasher, tokens, revoked, log),
		User:   service.NewUserService(repos.User, hasher),
		Store:  service.NewStoreService(repos.Store, repos.User, repos.Rating, log),
		Rating: service.NewRatingService(repos.Rating, repos.Store),
		Stats:  service.NewStatsService(repos.Stats),
	}

	// -------- controllers --------
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	controllers := initControllers(services, sqlDB)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}, nil
}

func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:   repository.NewUserRepository(db),
		Store:  repository.NewStoreRepository(db),
		Rating: repository.NewRatingRepository(db),
		Stats:  repository.NewStatsRepository(db),
	}
}

func initControllers(svc *Services, pinger controller.Pinger) *router.Controllers {
	return &router.Controllers{
		Auth:   controller.NewAuthController(svc.Auth),
		User:   controller.NewUserController(svc.User),
		Store:  controller.NewStoreController(svc.Store, svc.Rating),
		Rating: controller.NewRatingController(svc.Rating),
		Stats:  controller.NewStatsController(svc.Stats),
		Health: controller.NewHealthController(pinger),
	}
}

// ==================== tasks ====================

func initTasks(cfg *config.Config, deps *Dependencies, log *logrus.Logger) *task.StatsReporter {
	reporter := task.NewStatsReporter(deps.Services.Stats, log)
	if err := reporter.Start(cfg.Tasks.StatsCron); err != nil {
		log.Fatalf("start stats reporter: %v", err)
	}
	return reporter
}

// ==================== server ====================

// startServer blocks until SIGINT/SIGTERM, then drains in-flight requests.
func startServer(cfg config.ServerConfig, r *gin.Engine, log *logrus.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
