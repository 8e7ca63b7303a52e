package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevault/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// 认证
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	// 电影导入
	r.POST("/import-movie", h.ImportMovie)
	r.GET("/check-movie/:imdbId", h.CheckMovie)
	r.GET("/validate-imdb/:imdbId", h.ValidateImdb)

	// 电影查询
	r.GET("/movies", h.ListMovies)
	r.GET("/movies/:movieId", h.GetMovie)
	r.GET("/genres", h.ListGenres)

	// 收藏
	r.POST("/favorites", h.AddFavorite)
	r.DELETE("/favorites/:userId/:movieId", h.RemoveFavorite)
	r.GET("/favorites/:userId", h.ListFavorites)

	// 推荐服务代理
	r.GET("/recommendations/:userId", h.GetRecommendations)
}
