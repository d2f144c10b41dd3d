package routes

import (
	"net/http"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every endpoint and its middleware. All dependencies are
// constructed here from the config and the open database handle.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	jwt := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenLifetime)
	cerealService := services.NewCerealService(db)
	authService := services.NewAuthService(db, jwt)

	cerealCtl := controllers.NewCerealController(cerealService, cfg.PlaceholderPath)
	authCtl := controllers.NewAuthController(authService)

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.RequestLogger(),
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		}),
		limiter.Middleware(),
	)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	cereal := api.Group("/cereal")
	{
		// Open to anonymous callers.
		cereal.GET("", cerealCtl.GetAll)
		cereal.GET("/:id", cerealCtl.GetByID)
		cereal.GET("/:id/image", cerealCtl.GetImage)

		// Mutations require a valid bearer token.
		protected := cereal.Group("")
		protected.Use(middlewares.AuthMiddleware(jwt))
		{
			protected.POST("", cerealCtl.Create)
			protected.PUT("/:id", cerealCtl.Update)
			protected.DELETE("/all", cerealCtl.DeleteAll)
			protected.DELETE("/:id", cerealCtl.Delete)
		}
	}

	return r
}
