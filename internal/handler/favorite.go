package handler

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevault/internal/model"
	"gorm.io/gorm"
)

type favoriteRequest struct {
	UserID  int `json:"userId" binding:"required"`
	MovieID int `json:"movieId" binding:"required"`
}

// AddFavorite 添加收藏，重复收藏返回 409 而不是静默去重
func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and movieId are required"})
		return
	}

	favorited, err := h.Repos.Favorite.IsFavorited(req.UserID, req.MovieID)
	if err != nil {
		log.Printf("[Favorite] 查询收藏失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if favorited {
		c.JSON(http.StatusConflict, gin.H{"error": "Movie already in favorites"})
		return
	}

	favorite, err := h.Repos.Favorite.Add(req.UserID, req.MovieID)
	if err != nil {
		// 并发下先查后插之间仍可能撞唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Movie already in favorites"})
			return
		}
		log.Printf("[Favorite] 添加收藏失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Movie added to favorites",
		"favorite": favorite,
	})
}

// RemoveFavorite 取消收藏，记录不存在返回 404
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and movieId are required"})
		return
	}
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and movieId are required"})
		return
	}

	deleted, err := h.Repos.Favorite.Remove(userID, movieID)
	if err != nil {
		log.Printf("[Favorite] 删除收藏失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movie removed from favorites"})
}

// ListFavorites 用户收藏列表，按收藏时间倒序分页，返回关联的电影数据
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	total, err := h.Repos.Favorite.CountByUser(userID)
	if err != nil {
		log.Printf("[Favorite] 统计收藏失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	favorites, err := h.Repos.Favorite.ListByUser(userID, limit, offset)
	if err != nil {
		log.Printf("[Favorite] 查询收藏失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	movies := make([]*model.Movie, 0, len(favorites))
	for _, fav := range favorites {
		if fav.Movie != nil {
			movies = append(movies, fav.Movie)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites":  movies,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	})
}
