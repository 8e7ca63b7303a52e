package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRecommendations 推荐服务代理，原样转发下游 JSON，规避浏览器跨域限制
func (h *Handler) GetRecommendations(c *gin.Context) {
	userID := c.Param("userId")

	url := fmt.Sprintf("%s/recommend/%s", h.Config.RecommendationURL, userID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.recommendClient.Do(req)
	if err != nil {
		log.Printf("[Recommend] 请求推荐服务失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch recommendations",
			"details": err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch recommendations",
			"details": fmt.Sprintf("Recommendation service responded with status %d", resp.StatusCode),
		})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
