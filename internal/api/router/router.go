package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/microblog/docs"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/middleware"
)

type Options struct {
	Mode    string // gin mode: debug / release
	Tracing bool
}

// New builds the route table over the handler set.
func New(h *handler.Handler, opts Options) *gin.Engine {
	if opts.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidations()

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if opts.Tracing {
		r.Use(otelgin.Middleware("microblog"))
	}

	api := r.Group("/api")
	{
		follows := api.Group("/follows")
		{
			follows.GET("/following", h.ListFollowing)
			follows.GET("/followers", h.ListFollowers)
			follows.POST("/:user_id", h.Follow)
			follows.DELETE("/:user_id", h.Unfollow)
		}

		tweets := api.Group("/tweets")
		{
			tweets.POST("", h.CreateTweet)
			tweets.GET("", h.Feed)
			tweets.DELETE("/:tweet_id", h.DeleteTweet)
			tweets.POST("/:tweet_id/likes", h.LikeTweet)
			tweets.DELETE("/:tweet_id/likes", h.UnlikeTweet)
			tweets.GET("/:tweet_id/likes", h.TweetLikes)
		}

		users := api.Group("/users")
		{
			users.GET("/me", h.Me)
			users.DELETE("/me", h.DeleteMe)
			users.GET("/search", h.SearchUsers)
			users.GET("/:user_id", h.GetUser)
		}

		api.POST("/medias", h.UploadMedia)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
