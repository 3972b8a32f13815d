package web

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/web/handlers"
	"pawer.ru/pawer-bot/internal/web/middleware"
)

// NewRouter собирает gin-роутер Mini App API.
func NewRouter(
	cfg *config.Config,
	auth *handlers.AuthHandler,
	pets *handlers.PetHandler,
	me *handlers.MeHandler,
	initData middleware.InitDataVerifier,
	tokens middleware.TokenVerifier,
) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	// Mini App открывается с домена Telegram, поэтому CORS широкий.
	// Безопасность обеспечивает подпись initData, а не Origin.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth", auth.Authenticate)

		authorized := api.Group("")
		authorized.Use(middleware.Auth(initData, tokens))
		{
			authorized.GET("/me", me.Get)
			authorized.GET("/pet", pets.Get)
			authorized.POST("/pet", pets.Create)
			authorized.POST("/pet/interact", pets.Interact)
		}
	}

	return r
}
