package handler

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevault/internal/repository"
)

const genreCacheKey = "genres:distinct"

// ListMovies 电影列表，支持搜索、年份/评分/热度区间和类型过滤
func (h *Handler) ListMovies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "18"))
	if limit < 1 {
		limit = 18
	}

	params := &repository.ListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}

	if genres := c.Query("genres"); genres != "" {
		params.Genres = strings.Split(genres, ",")
	}
	if v, err := strconv.Atoi(c.Query("minYear")); err == nil {
		params.MinYear = v
	}
	if v, err := strconv.Atoi(c.Query("maxYear")); err == nil {
		params.MaxYear = v
	}
	if v, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		params.MinRating = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxRating"), 64); err == nil {
		params.MaxRating = &v
	}
	if v, err := strconv.ParseFloat(c.Query("minPopularity"), 64); err == nil {
		params.MinPopularity = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPopularity"), 64); err == nil {
		params.MaxPopularity = &v
	}

	movies, total, err := h.Repos.Movie.List(params)
	if err != nil {
		log.Printf("[Movie] 查询电影列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, gin.H{
		"movies":      movies,
		"totalPages":  totalPages,
		"currentPage": page,
		"totalMovies": total,
	})
}

// GetMovie 电影详情，主表加全部子表数据
func (h *Handler) GetMovie(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID is required"})
		return
	}

	detail, err := h.Repos.Movie.FindDetail(movieID)
	if err != nil {
		log.Printf("[Movie] 查询电影详情失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListGenres 全部类型，去重后按字母升序，结果短时缓存
func (h *Handler) ListGenres(c *gin.Context) {
	if cached, ok := h.genreCache.Get(genreCacheKey); ok {
		c.JSON(http.StatusOK, cached.([]string))
		return
	}

	genres, err := h.Repos.Movie.DistinctGenres()
	if err != nil {
		log.Printf("[Movie] 查询类型列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
		return
	}

	h.genreCache.Set(genreCacheKey, genres, 5*time.Minute)
	c.JSON(http.StatusOK, genres)
}
