package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinevault/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func seedMovie(t *testing.T, db *gorm.DB, id int, title string, year int, rating, popularity float64, votes int, genres ...string) {
	t.Helper()
	release := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	movie := model.Movie{
		ID:            id,
		ImdbID:        fmt.Sprintf("tt%07d", id),
		OriginalTitle: title,
		ReleaseDate:   &release,
		VoteAverage:   rating,
		Popularity:    popularity,
		VoteCount:     votes,
	}
	require.NoError(t, db.Create(&movie).Error)
	for _, g := range genres {
		require.NoError(t, db.Create(&model.Genre{MovieID: id, Genre: g}).Error)
	}
}

func TestFindByImdbID(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	seedMovie(t, db, 603, "The Matrix", 1999, 8.2, 85.7, 24000, "Action")

	movie, err := repo.FindByImdbID("tt0000603")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, 603, movie.ID)

	missing, err := repo.FindByImdbID("tt9999999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	seedMovie(t, db, 1, "Low Votes", 2000, 9.0, 10, 100)
	seedMovie(t, db, 2, "High Votes", 2001, 7.0, 20, 5000)
	seedMovie(t, db, 3, "Same Votes Better Rating", 2002, 8.0, 30, 100)

	movies, total, err := repo.List(&ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, movies, 3)

	// 先按票数降序，票数相同按评分降序
	assert.Equal(t, 2, movies[0].ID)
	assert.Equal(t, 1, movies[1].ID)
	assert.Equal(t, 3, movies[2].ID)
}

func TestListRatingRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	seedMovie(t, db, 1, "Too Low", 2000, 6.9, 10, 100)
	seedMovie(t, db, 2, "Lower Bound", 2001, 7.0, 10, 100)
	seedMovie(t, db, 3, "Inside", 2002, 7.5, 10, 100)
	seedMovie(t, db, 4, "Upper Bound", 2003, 8.0, 10, 100)
	seedMovie(t, db, 5, "Too High", 2004, 8.1, 10, 100)

	minR, maxR := 7.0, 8.0
	movies, total, err := repo.List(&ListParams{Page: 1, Limit: 10, MinRating: &minR, MaxRating: &maxR})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, m := range movies {
		assert.GreaterOrEqual(t, m.VoteAverage, 7.0)
		assert.LessOrEqual(t, m.VoteAverage, 8.0)
	}
}

func TestListGenreFilterAnyOfNoDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	// 同时带两个目标类型的电影经过 JOIN 也只能出现一次
	seedMovie(t, db, 1, "Both", 2000, 8.0, 10, 400, "Action", "Comedy")
	seedMovie(t, db, 2, "Action Only", 2001, 7.0, 10, 300, "Action")
	seedMovie(t, db, 3, "Comedy Only", 2002, 6.0, 10, 200, "Comedy")
	seedMovie(t, db, 4, "Neither", 2003, 9.0, 10, 100, "Drama")

	movies, total, err := repo.List(&ListParams{Page: 1, Limit: 10, Genres: []string{"Action", "Comedy"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, movies, 3)

	seen := map[int]bool{}
	for _, m := range movies {
		assert.False(t, seen[m.ID], "movie %d returned twice", m.ID)
		seen[m.ID] = true
	}
	assert.False(t, seen[4])
}

func TestListSearchAndYearRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	seedMovie(t, db, 1, "The Matrix", 1999, 8.2, 10, 100)
	seedMovie(t, db, 2, "The Matrix Reloaded", 2003, 7.0, 10, 100)
	seedMovie(t, db, 3, "Inception", 2010, 8.4, 10, 100)

	movies, total, err := repo.List(&ListParams{Page: 1, Limit: 10, Search: "matrix"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, movies, 2)

	movies, total, err = repo.List(&ListParams{Page: 1, Limit: 10, MinYear: 2000, MaxYear: 2010})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, m := range movies {
		assert.NotEqual(t, 1, m.ID)
	}
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	for i := 1; i <= 5; i++ {
		seedMovie(t, db, i, fmt.Sprintf("Movie %d", i), 2000+i, 7.0, 10, 1000-i)
	}

	page1, total, err := repo.List(&ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := repo.List(&ListParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)
}

func TestDistinctGenresSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	seedMovie(t, db, 1, "A", 2000, 7.0, 10, 100, "Drama", "Action")
	seedMovie(t, db, 2, "B", 2001, 7.0, 10, 100, "Action", "Comedy")
	seedMovie(t, db, 3, "C", 2002, 7.0, 10, 100, "Action")

	genres, err := repo.DistinctGenres()
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, genres)
}

func TestSaveImportAndDetail(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	budget := int64(1000)
	rec := &ImportRecord{
		Movie: model.Movie{
			ID:            42,
			ImdbID:        "tt0000042",
			OriginalTitle: "Answer",
			Budget:        &budget,
			VoteAverage:   8.0,
			VoteCount:     10,
		},
		Cast: []model.CastMember{
			{Name: "Zed Actor", Character: "B", Gender: 2, Order: 1},
			{Name: "Ann Actor", Character: "A", Gender: 1, Order: 0},
		},
		Crew:      []model.CrewMember{{Name: "Some Director", Job: "Director", Department: "Directing", Gender: 2}},
		Genres:    []string{"Action", "Action", "Drama"},
		Keywords:  []string{"k1", "k2", "k1"},
		Companies: []string{"ACME"},
		Countries: []string{"France"},
		Languages: []string{"French", "English"},
	}

	saved, err := repo.SaveImport(rec)
	require.NoError(t, err)
	assert.Equal(t, 42, saved.ID)

	detail, err := repo.FindDetail(42)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Answer", detail.OriginalTitle)
	// 演员按姓名升序
	require.Len(t, detail.Cast, 2)
	assert.Equal(t, "Ann Actor", detail.Cast[0].Name)
	assert.Equal(t, "Zed Actor", detail.Cast[1].Name)
	assert.ElementsMatch(t, []string{"Action", "Drama"}, detail.Genres)
	assert.ElementsMatch(t, []string{"k1", "k2"}, detail.Keywords)
	assert.Equal(t, []string{"ACME"}, detail.ProductionCompanies)
	assert.Equal(t, []string{"France"}, detail.ProductionCountries)
	assert.ElementsMatch(t, []string{"English", "French"}, detail.SpokenLanguages)
}

func TestSaveImportDuplicatePrimaryKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	rec := &ImportRecord{Movie: model.Movie{ID: 7, ImdbID: "tt0000007", OriginalTitle: "Seven"}}
	_, err := repo.SaveImport(rec)
	require.NoError(t, err)

	// 同一主键再次写入必须报唯一冲突，而不是覆盖
	_, err = repo.SaveImport(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindDetailMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	detail, err := repo.FindDetail(999)
	require.NoError(t, err)
	assert.Nil(t, detail)
}
