package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevault/internal/service"
)

type importRequest struct {
	ImdbID string `json:"imdbId" binding:"required"`
}

// ImportMovie 按 IMDb ID 导入电影，新导入返回 201，已存在返回 200
func (h *Handler) ImportMovie(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": bindingErrors(err),
		})
		return
	}

	result := h.Importer.Import(req.ImdbID)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExists != nil && *result.AlreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// CheckMovie 检查指定 IMDb ID 的电影是否已入库
func (h *Handler) CheckMovie(c *gin.Context) {
	imdbID := c.Param("imdbId")

	if !service.IsValidImdbID(imdbID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": `Invalid IMDb ID format. It must be at least 9 characters long and start with "tt".`,
		})
		return
	}

	exists, movie, err := h.Importer.IsMovieInDatabase(imdbID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while checking movie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists": exists,
		"movie":  movie,
	})
}

// ValidateImdb 仅校验 IMDb ID 格式
func (h *Handler) ValidateImdb(c *gin.Context) {
	imdbID := c.Param("imdbId")
	valid := service.IsValidImdbID(imdbID)

	message := "Valid IMDb ID format"
	if !valid {
		message = `Invalid IMDb ID. It must be at least 9 characters long and start with "tt".`
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   valid,
		"message": message,
	})
}
