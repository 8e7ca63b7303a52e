package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/user/cinevault/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ImportRecord 一次导入需要落库的全部数据，主表加七张子表
type ImportRecord struct {
	Movie     model.Movie
	Cast      []model.CastMember
	Crew      []model.CrewMember
	Genres    []string
	Keywords  []string
	Companies []string
	Countries []string
	Languages []string
}

// ListParams 电影列表查询参数
type ListParams struct {
	Page          int
	Limit         int
	Search        string
	Genres        []string
	MinYear       int
	MaxYear       int
	MinRating     *float64
	MaxRating     *float64
	MinPopularity *float64
	MaxPopularity *float64
}

// FindByImdbID 根据 IMDb ID 查找电影，未找到返回 nil
func (r *MovieRepository) FindByImdbID(imdbID string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("imdb_id = ?", imdbID).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// SaveImport 在单个事务内写入电影主表和全部子表，任一写入失败整体回滚。
// 子表数据先按联合主键去重，重复标签和同名人员只保留首条。
func (r *MovieRepository) SaveImport(rec *ImportRecord) (*model.Movie, error) {
	movie := rec.Movie
	movieID := movie.ID

	cast := dedupeCast(rec.Cast)
	crew := dedupeCrew(rec.Crew)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&movie).Error; err != nil {
			return err
		}

		for _, g := range dedupeStrings(rec.Genres) {
			if err := tx.Create(&model.Genre{MovieID: movieID, Genre: g}).Error; err != nil {
				return err
			}
		}
		for _, c := range dedupeStrings(rec.Companies) {
			if err := tx.Create(&model.ProductionCompany{MovieID: movieID, Company: c}).Error; err != nil {
				return err
			}
		}
		for _, c := range dedupeStrings(rec.Countries) {
			if err := tx.Create(&model.ProductionCountry{MovieID: movieID, Country: c}).Error; err != nil {
				return err
			}
		}
		for _, l := range dedupeStrings(rec.Languages) {
			if err := tx.Create(&model.SpokenLanguage{MovieID: movieID, Language: l}).Error; err != nil {
				return err
			}
		}
		for i := range cast {
			cast[i].MovieID = movieID
			if err := tx.Create(&cast[i]).Error; err != nil {
				return err
			}
		}
		for i := range crew {
			crew[i].MovieID = movieID
			if err := tx.Create(&crew[i]).Error; err != nil {
				return err
			}
		}
		for _, k := range dedupeStrings(rec.Keywords) {
			if err := tx.Create(&model.Keyword{MovieID: movieID, Keyword: k}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// FindByID 根据 ID 查找电影主表记录，未找到返回 nil
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, "movie_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// FindDetail 加载电影详情，主表加全部子表。
// 演员和职员按姓名升序，关键词最多返回 10 条。
func (r *MovieRepository) FindDetail(id int) (*model.MovieDetail, error) {
	movie, err := r.FindByID(id)
	if err != nil || movie == nil {
		return nil, err
	}

	detail := &model.MovieDetail{
		Movie:               *movie,
		Cast:                []model.CastMember{},
		Crew:                []model.CrewMember{},
		Genres:              []string{},
		Keywords:            []string{},
		ProductionCompanies: []string{},
		ProductionCountries: []string{},
		SpokenLanguages:     []string{},
	}

	if err := r.db.Where("movie_id = ?", id).Order("name ASC").Find(&detail.Cast).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("movie_id = ?", id).Order("name ASC").Find(&detail.Crew).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Genre{}).Where("movie_id = ?", id).Pluck("genre", &detail.Genres).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Keyword{}).Where("movie_id = ?", id).Limit(10).Pluck("keyword", &detail.Keywords).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.ProductionCompany{}).Where("movie_id = ?", id).Pluck("production_company", &detail.ProductionCompanies).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.ProductionCountry{}).Where("movie_id = ?", id).Pluck("production_country", &detail.ProductionCountries).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.SpokenLanguage{}).Where("movie_id = ?", id).Pluck("language", &detail.SpokenLanguages).Error; err != nil {
		return nil, err
	}

	return detail, nil
}

// List 分页查询电影列表，按票数和评分降序。
// 类型过滤是任一命中（OR 语义），通过 JOIN 实现，需去重。
func (r *MovieRepository) List(p *ListParams) ([]model.Movie, int64, error) {
	var total int64
	if err := r.buildListQuery(p).Distinct("movies.movie_id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (p.Page - 1) * p.Limit
	movies := []model.Movie{}
	err := r.buildListQuery(p).
		Distinct("movies.*").
		Order("vote_count DESC, vote_average DESC").
		Limit(p.Limit).
		Offset(offset).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *MovieRepository) buildListQuery(p *ListParams) *gorm.DB {
	q := r.db.Model(&model.Movie{})

	if s := strings.TrimSpace(p.Search); s != "" {
		q = q.Where("LOWER(original_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if p.MinYear > 0 {
		q = q.Where("release_date >= ?", time.Date(p.MinYear, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	if p.MaxYear > 0 {
		q = q.Where("release_date <= ?", time.Date(p.MaxYear, 12, 31, 0, 0, 0, 0, time.UTC))
	}
	if p.MinRating != nil {
		q = q.Where("vote_average >= ?", *p.MinRating)
	}
	if p.MaxRating != nil {
		q = q.Where("vote_average <= ?", *p.MaxRating)
	}
	if p.MinPopularity != nil {
		q = q.Where("popularity >= ?", *p.MinPopularity)
	}
	if p.MaxPopularity != nil {
		q = q.Where("popularity <= ?", *p.MaxPopularity)
	}
	if len(p.Genres) > 0 {
		q = q.Joins("JOIN genres ON genres.movie_id = movies.movie_id").
			Where("genres.genre IN ?", p.Genres)
	}

	return q
}

// DistinctGenres 返回去重后按字母升序排列的全部类型
func (r *MovieRepository) DistinctGenres() ([]string, error) {
	genres := []string{}
	err := r.db.Model(&model.Genre{}).
		Distinct("genre").
		Order("genre ASC").
		Pluck("genre", &genres).Error
	return genres, err
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func dedupeCast(members []model.CastMember) []model.CastMember {
	seen := make(map[string]bool, len(members))
	out := make([]model.CastMember, 0, len(members))
	for _, m := range members {
		if m.Name == "" || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		out = append(out, m)
	}
	return out
}

func dedupeCrew(members []model.CrewMember) []model.CrewMember {
	seen := make(map[string]bool, len(members))
	out := make([]model.CrewMember, 0, len(members))
	for _, m := range members {
		if m.Name == "" || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		out = append(out, m)
	}
	return out
}
