package model

import (
	"time"
)

// Movie 电影主表，主键直接使用 TMDB 的数字 ID
type Movie struct {
	ID            int        `json:"id" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	ImdbID        string     `json:"imdbId" gorm:"column:imdb_id;size:10;index"`
	Adult         bool       `json:"adult"`
	Budget        *int64     `json:"budget"`
	OriginalTitle string     `json:"original_title" gorm:"size:255;not null"`
	Popularity    float64    `json:"popularity"`
	ReleaseDate   *time.Time `json:"release_date" gorm:"type:date"`
	Revenue       *int64     `json:"revenue"`
	Runtime       *int       `json:"runtime"`
	Tagline       *string    `json:"tagline" gorm:"size:500"`
	VoteAverage   float64    `json:"vote_average" gorm:"index"`
	VoteCount     int        `json:"vote_count" gorm:"index"`
}

// CastMember 演员表，(movie_id, name) 联合主键，同名演员在同一部电影中只保留一条
type CastMember struct {
	MovieID   int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Name      string `json:"name" gorm:"size:255;primaryKey"`
	Character string `json:"character" gorm:"size:255"`
	Gender    int    `json:"gender"` // TMDB 性别编码：0 未知，1 女，2 男，3 非二元
	Order     int    `json:"order" gorm:"column:cast_order"`
}

// TableName 表名为 cast
func (CastMember) TableName() string {
	return "cast"
}

// CrewMember 职员表，(movie_id, name) 联合主键
type CrewMember struct {
	MovieID    int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Name       string `json:"name" gorm:"size:255;primaryKey"`
	Job        string `json:"job" gorm:"size:255"`
	Department string `json:"department" gorm:"size:255"`
	Gender     int    `json:"gender"`
}

// TableName 表名为 crew
func (CrewMember) TableName() string {
	return "crew"
}

// Genre 电影类型标签，(movie_id, genre) 联合主键，重复标签合并为一行
type Genre struct {
	MovieID int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Genre   string `json:"genre" gorm:"size:255;primaryKey"`
}

// Keyword 关键词标签
type Keyword struct {
	MovieID int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Keyword string `json:"keyword" gorm:"size:255;primaryKey"`
}

// ProductionCompany 制片公司
type ProductionCompany struct {
	MovieID int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Company string `json:"production_company" gorm:"column:production_company;size:255;primaryKey"`
}

// ProductionCountry 制片国家
type ProductionCountry struct {
	MovieID int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Country string `json:"production_country" gorm:"column:production_country;size:255;primaryKey"`
}

// SpokenLanguage 语言
type SpokenLanguage struct {
	MovieID  int    `json:"movieId" gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	Language string `json:"language" gorm:"size:255;primaryKey"`
}

// MovieDetail 详情接口返回结构，主表字段加上全部子表数据
type MovieDetail struct {
	Movie
	Cast                []CastMember `json:"cast"`
	Crew                []CrewMember `json:"crew"`
	Genres              []string     `json:"genres"`
	Keywords            []string     `json:"keywords"`
	ProductionCompanies []string     `json:"production_companies"`
	ProductionCountries []string     `json:"production_countries"`
	SpokenLanguages     []string     `json:"spoken_languages"`
}
