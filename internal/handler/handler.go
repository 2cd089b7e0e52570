package handler

import (
	"github.com/FeedApp/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(prometheusMiddleware())

	// Artifacts are exposed read-only at the path their stored name mirrors.
	r.Static("/images", viper.GetString("storage.local-dir"))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	feed := r.Group("/feed", h.authMiddleware)
	{
		feed.GET("/posts", h.feedGetPosts)
		feed.POST("/post", h.feedCreatePost)

		post := feed.Group("/post/:postId")
		{
			post.GET("", h.feedGetPost)
			post.PUT("", h.feedUpdatePost)
			post.DELETE("", h.feedDeletePost)
		}
	}

	return r
}
