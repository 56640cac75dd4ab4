package handlers

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/auth"
	"github.com/justsurfingit/superio-server/internal/config"
	"github.com/justsurfingit/superio-server/internal/logger"
	"github.com/justsurfingit/superio-server/internal/metrics"
)

// Dependencies is everything the router needs to serve the API.
type Dependencies struct {
	Jobs         JobStore
	Categories   CategoryStore
	Applications ApplicationStore
	Uploads      LogoUploader
	Tokens       *auth.TokenService
	Ping         func(ctx context.Context) error
	Log          logger.Logger
}

// NewRouter assembles middleware and routes. A nil Log discards output.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if deps.Log == nil {
		deps.Log = logger.NewNoOpLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	r.Use(RequestLogger(deps.Log))
	r.Use(metrics.Middleware())
	r.Use(LimitBody(cfg.Server.MaxBodyBytes))

	authHandler := NewAuthHandler(deps.Tokens, cfg.Auth.CookieName, cfg.Auth.CookieSecure, deps.Log)
	jobHandler := NewJobHandler(deps.Jobs, deps.Log, cfg.Auth.EnforceUpdateOwnership)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Log)
	applicationHandler := NewApplicationHandler(deps.Applications, deps.Log)
	uploadHandler := NewUploadHandler(deps.Uploads, deps.Log)

	gate := auth.RequireToken(deps.Tokens, cfg.Auth.CookieName, deps.Log)
	sameCaller := auth.MatchQueryEmail()

	r.GET("/", Root)
	r.POST("/", uploadHandler.UploadLogo)
	r.GET("/health", HealthCheck(deps.Ping))
	r.GET("/metrics", metrics.Handler())

	r.POST("/createToken", authHandler.CreateToken)
	r.POST("/logout", authHandler.Logout)

	r.GET("/categories", categoryHandler.ListCategories)

	r.GET("/findJobs/:category/:id", jobHandler.FindJob)
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/jobsCount", jobHandler.JobsCount)
	r.POST("/addJob", jobHandler.CreateJob)
	r.GET("/updateJob/:category/:id", gate, sameCaller, jobHandler.JobForUpdate)
	if cfg.Auth.EnforceUpdateOwnership {
		r.PUT("/updateJob/:category/:id", gate, jobHandler.UpdateJob)
	} else {
		r.PUT("/updateJob/:category/:id", jobHandler.UpdateJob)
	}

	posted := r.Group("/myPostedJobs", gate, sameCaller)
	{
		posted.GET("", jobHandler.MyPostedJobs)
		posted.DELETE("/:id", jobHandler.DeletePostedJob)
	}

	r.GET("/applyJob", gate, sameCaller, applicationHandler.AppliedJobs)
	r.GET("/applyJob/:id", applicationHandler.FindApplication)
	r.POST("/applyJob", applicationHandler.Apply)

	return r
}

// corsConfig reflects the request origin when every origin is allowed, so the
// credential cookie can still be sent cross-site.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
