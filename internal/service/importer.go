package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/user/cinevault/internal/model"
	"github.com/user/cinevault/internal/repository"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,}$`)

// IsValidImdbID 校验 IMDb ID 格式：tt 前缀加 7 位以上数字，总长不少于 9
func IsValidImdbID(imdbID string) bool {
	return len(imdbID) >= 9 && strings.HasPrefix(imdbID, "tt") && imdbIDPattern.MatchString(imdbID)
}

// ImportResult 导入结果统一信封
type ImportResult struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	Movie         *model.Movie `json:"movie,omitempty"`
	AlreadyExists *bool        `json:"alreadyExists,omitempty"`
}

// ImportService 电影导入编排：校验 -> 查库 -> TMDB 查找 -> 并发拉取 -> 事务落库
type ImportService struct {
	movieRepo *repository.MovieRepository
	tmdb      *TMDBClient
	group     singleflight.Group
}

func NewImportService(repo *repository.MovieRepository, tmdb *TMDBClient) *ImportService {
	return &ImportService{
		movieRepo: repo,
		tmdb:      tmdb,
	}
}

// IsMovieInDatabase 按 IMDb ID 查询电影是否已入库
func (s *ImportService) IsMovieInDatabase(imdbID string) (bool, *model.Movie, error) {
	movie, err := s.movieRepo.FindByImdbID(imdbID)
	if err != nil {
		return false, nil, err
	}
	return movie != nil, movie, nil
}

// Import 执行完整导入流程，任一步失败即终止，不自动重试。
// 同一 IMDb ID 的并发导入通过 singleflight 合并为一次执行。
func (s *ImportService) Import(imdbID string) *ImportResult {
	if !IsValidImdbID(imdbID) {
		return &ImportResult{
			Success: false,
			Message: `Invalid IMDb ID. It must be at least 9 characters long and start with "tt".`,
		}
	}

	val, err, _ := s.group.Do(imdbID, func() (interface{}, error) {
		return s.importInternal(imdbID), nil
	})
	if err != nil {
		return &ImportResult{Success: false, Message: err.Error()}
	}
	return val.(*ImportResult)
}

func (s *ImportService) importInternal(imdbID string) *ImportResult {
	// 幂等检查：已入库直接返回，不做任何写入
	existing, err := s.movieRepo.FindByImdbID(imdbID)
	if err != nil {
		return &ImportResult{Success: false, Message: "Database error while checking movie existence"}
	}
	if existing != nil {
		return alreadyExistsResult(existing)
	}

	tmdbID, err := s.tmdb.FindByImdbID(imdbID)
	if err != nil {
		return &ImportResult{Success: false, Message: fmt.Sprintf("Failed to find movie in TMDB: %v", err)}
	}
	if tmdbID == 0 {
		return &ImportResult{Success: false, Message: "Movie not found in TMDB database"}
	}

	// 详情、演职员、关键词并发拉取，三者必须全部成功
	var (
		details  *TMDBMovieDetails
		credits  *TMDBCredits
		keywords *TMDBKeywords
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		if details, err = s.tmdb.FetchDetails(tmdbID); err != nil {
			return fmt.Errorf("Failed to fetch movie details from TMDB: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if credits, err = s.tmdb.FetchCredits(tmdbID); err != nil {
			return fmt.Errorf("Failed to fetch movie credits from TMDB: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if keywords, err = s.tmdb.FetchKeywords(tmdbID); err != nil {
			return fmt.Errorf("Failed to fetch movie keywords from TMDB: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return &ImportResult{Success: false, Message: err.Error()}
	}

	saved, err := s.movieRepo.SaveImport(buildImportRecord(details, credits, keywords))
	if err != nil {
		// 跨进程竞争：主键冲突说明别的请求刚写入了同一部电影，按已存在处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if movie, ferr := s.movieRepo.FindByImdbID(imdbID); ferr == nil && movie != nil {
				return alreadyExistsResult(movie)
			}
		}
		return &ImportResult{Success: false, Message: fmt.Sprintf("Failed to save movie to database: %v", err)}
	}

	notExists := false
	return &ImportResult{
		Success:       true,
		Message:       "Movie imported successfully",
		Movie:         saved,
		AlreadyExists: &notExists,
	}
}

func alreadyExistsResult(movie *model.Movie) *ImportResult {
	exists := true
	return &ImportResult{
		Success:       true,
		Message:       "Movie already exists in database",
		Movie:         movie,
		AlreadyExists: &exists,
	}
}

// buildImportRecord 把 TMDB 响应映射为落库记录，空值字段存 NULL
func buildImportRecord(details *TMDBMovieDetails, credits *TMDBCredits, keywords *TMDBKeywords) *repository.ImportRecord {
	rec := &repository.ImportRecord{
		Movie: model.Movie{
			ID:            details.ID,
			ImdbID:        details.ImdbID,
			Adult:         details.Adult,
			OriginalTitle: details.OriginalTitle,
			Popularity:    details.Popularity,
			VoteAverage:   details.VoteAverage,
			VoteCount:     details.VoteCount,
		},
	}

	if details.Budget > 0 {
		rec.Movie.Budget = &details.Budget
	}
	if details.Revenue > 0 {
		rec.Movie.Revenue = &details.Revenue
	}
	if details.Runtime > 0 {
		rec.Movie.Runtime = &details.Runtime
	}
	if details.Tagline != "" {
		rec.Movie.Tagline = &details.Tagline
	}
	if t, err := time.Parse("2006-01-02", details.ReleaseDate); err == nil {
		rec.Movie.ReleaseDate = &t
	}

	for _, g := range details.Genres {
		rec.Genres = append(rec.Genres, g.Name)
	}
	for _, c := range details.ProductionCompanies {
		rec.Companies = append(rec.Companies, c.Name)
	}
	for _, c := range details.ProductionCountries {
		rec.Countries = append(rec.Countries, c.Name)
	}
	for _, l := range details.SpokenLanguages {
		rec.Languages = append(rec.Languages, l.Name)
	}
	for _, c := range credits.Cast {
		rec.Cast = append(rec.Cast, model.CastMember{
			Name:      c.Name,
			Character: c.Character,
			Gender:    c.Gender,
			Order:     c.Order,
		})
	}
	for _, c := range credits.Crew {
		rec.Crew = append(rec.Crew, model.CrewMember{
			Name:       c.Name,
			Job:        c.Job,
			Department: c.Department,
			Gender:     c.Gender,
		})
	}
	for _, k := range keywords.Keywords {
		rec.Keywords = append(rec.Keywords, k.Name)
	}

	return rec
}
