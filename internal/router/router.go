package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "store_rating_v1/docs"
	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/controller"
	"store_rating_v1/internal/middleware"
	"store_rating_v1/internal/model"
)

// Controllers every HTTP handler group
type Controllers struct {
	Auth   *controller.AuthController
	User   *controller.UserController
	Store  *controller.StoreController
	Rating *controller.RatingController
	Stats  *controller.StatsController
	Health *controller.HealthController
}

// Options router-wide middleware settings
type Options struct {
	Logger        *logrus.Logger
	CORSOrigins   []string
	Authenticator middleware.Authenticator
}

// SetupRouter builds the engine with middleware and all routes.
func SetupRouter(ctrls *Controllers, opts Options) *gin.Engine {
	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if opts.Logger != nil {
		r.Use(middleware.AccessLog(opts.Logger))
	}
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	InitRoutes(r, ctrls, middleware.JWTAuth(opts.Authenticator))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// InitRoutes registers every route. auth must run before any role check.
func InitRoutes(r *gin.Engine, ctrls *Controllers, auth gin.HandlerFunc) {
	// http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", ctrls.Health.Check)

	admin := middleware.RequireRole(model.RoleAdmin)
	rater := middleware.RequireRole(model.RoleUser)
	owner := middleware.RequireRole(model.RoleStore)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", ctrls.Auth.Register)
			authGroup.POST("/login", ctrls.Auth.Login)
			authGroup.POST("/logout", auth, ctrls.Auth.Logout)
			authGroup.GET("/me", auth, ctrls.Auth.Me)
			authGroup.PUT("/password", auth, ctrls.Auth.ChangePassword)
		}

		users := api.Group("/users", auth)
		{
			users.GET("", admin, ctrls.User.List)
			users.POST("", admin, ctrls.User.Create)
			users.GET("/:id", admin, ctrls.User.Get)
			// self or admin, checked by the service
			users.PUT("/:id", ctrls.User.Update)
			users.DELETE("/:id", admin, ctrls.User.Delete)
		}

		stores := api.Group("/stores", auth)
		{
			stores.GET("", ctrls.Store.List)
			stores.POST("", admin, ctrls.Store.Create)
			stores.GET("/:id", ctrls.Store.Get)
			stores.PUT("/:id", admin, ctrls.Store.Update)
			stores.DELETE("/:id", admin, ctrls.Store.Delete)
			stores.GET("/:id/ratings", ctrls.Store.Ratings)
		}

		ratings := api.Group("/ratings", auth)
		{
			ratings.GET("", admin, ctrls.Rating.List)
			ratings.POST("", rater, ctrls.Rating.Create)
			ratings.PUT("/:storeId", rater, ctrls.Rating.Update)
			ratings.DELETE("/:id", admin, ctrls.Rating.Delete)
		}

		api.GET("/stats", auth, admin, ctrls.Stats.Get)
		api.GET("/store-dashboard", auth, owner, ctrls.Store.Dashboard)
	}
}
