package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	cache "github.com/patrickmn/go-cache"
	"github.com/user/cinevault/internal/config"
	"github.com/user/cinevault/internal/repository"
	"github.com/user/cinevault/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Importer *service.ImportService

	// genres 结果缓存，导入不频繁，5 分钟足够
	genreCache *cache.Cache

	// 推荐服务代理用的 HTTP 客户端
	recommendClient *http.Client
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	tmdb := service.NewTMDBClient(cfg)
	importer := service.NewImportService(repos.Movie, tmdb)

	return &Handler{
		Repos:           repos,
		Config:          cfg,
		Importer:        importer,
		genreCache:      cache.New(5*time.Minute, 10*time.Minute),
		recommendClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// bindingErrors 把 validator 的校验错误转换为结构化错误列表
func bindingErrors(err error) []gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, gin.H{
				"field":   fe.Field(),
				"message": "failed on rule: " + fe.Tag(),
			})
		}
		return out
	}
	return []gin.H{{"message": err.Error()}}
}
