package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/user/cinevault/internal/config"
)

// ErrTokenNotConfigured TMDB 凭证缺失，属于配置错误，与网络/接口错误区分开
var ErrTokenNotConfigured = errors.New("TMDB Bearer token is not configured")

// TMDBClient TMDB 接口客户端，凭证在构造时注入
type TMDBClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	findCache  *lru.Cache[string, int] // IMDb ID -> TMDB ID
}

// NewTMDBClient 创建 TMDB 客户端
func NewTMDBClient(cfg *config.Config) *TMDBClient {
	cache, _ := lru.New[string, int](1024)
	return &TMDBClient{
		token:   cfg.TMDBToken,
		baseURL: cfg.TMDBBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		findCache: cache,
	}
}

// TMDBMovieDetails 电影详情响应
type TMDBMovieDetails struct {
	ID            int     `json:"id"`
	ImdbID        string  `json:"imdb_id"`
	Adult         bool    `json:"adult"`
	Budget        int64   `json:"budget"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	Popularity    float64 `json:"popularity"`
	ReleaseDate   string  `json:"release_date"`
	Revenue       int64   `json:"revenue"`
	Runtime       int     `json:"runtime"`
	Tagline       string  `json:"tagline"`
	Title         string  `json:"title"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Genres        []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	ProductionCompanies []struct {
		Name string `json:"name"`
	} `json:"production_companies"`
	ProductionCountries []struct {
		Name string `json:"name"`
	} `json:"production_countries"`
	SpokenLanguages []struct {
		Name string `json:"name"`
	} `json:"spoken_languages"`
}

// TMDBCredits 演职员响应
type TMDBCredits struct {
	ID   int `json:"id"`
	Cast []struct {
		Name      string `json:"name"`
		Gender    int    `json:"gender"`
		Character string `json:"character"`
		Order     int    `json:"order"`
	} `json:"cast"`
	Crew []struct {
		Name       string `json:"name"`
		Gender     int    `json:"gender"`
		Job        string `json:"job"`
		Department string `json:"department"`
	} `json:"crew"`
}

// TMDBKeywords 关键词响应
type TMDBKeywords struct {
	ID       int `json:"id"`
	Keywords []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"keywords"`
}

type tmdbFindResponse struct {
	MovieResults []struct {
		ID int `json:"id"`
	} `json:"movie_results"`
}

// FindByImdbID 通过 IMDb ID 查找 TMDB 数字 ID，无结果返回 0
func (c *TMDBClient) FindByImdbID(imdbID string) (int, error) {
	if id, ok := c.findCache.Get(imdbID); ok {
		return id, nil
	}

	var result tmdbFindResponse
	url := fmt.Sprintf("%s/find/%s?external_source=imdb_id", c.baseURL, imdbID)
	if err := c.getJSON(url, &result); err != nil {
		return 0, err
	}

	if len(result.MovieResults) == 0 {
		return 0, nil
	}

	id := result.MovieResults[0].ID
	c.findCache.Add(imdbID, id)
	return id, nil
}

// FetchDetails 获取电影详情
func (c *TMDBClient) FetchDetails(tmdbID int) (*TMDBMovieDetails, error) {
	var result TMDBMovieDetails
	url := fmt.Sprintf("%s/movie/%d?language=en-US", c.baseURL, tmdbID)
	if err := c.getJSON(url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchCredits 获取演职员表
func (c *TMDBClient) FetchCredits(tmdbID int) (*TMDBCredits, error) {
	var result TMDBCredits
	url := fmt.Sprintf("%s/movie/%d/credits?language=en-US", c.baseURL, tmdbID)
	if err := c.getJSON(url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchKeywords 获取关键词列表
func (c *TMDBClient) FetchKeywords(tmdbID int) (*TMDBKeywords, error) {
	var result TMDBKeywords
	url := fmt.Sprintf("%s/movie/%d/keywords", c.baseURL, tmdbID)
	if err := c.getJSON(url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON 发送带凭证的 GET 请求并解析 JSON，非 2xx 与网络错误统一失败，不重试
func (c *TMDBClient) getJSON(url string, target interface{}) error {
	if c.token == "" {
		return ErrTokenNotConfigured
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("TMDB API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
