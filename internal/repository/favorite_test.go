package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFavoriteAddRemoveCycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)

	seedMovie(t, db, 603, "The Matrix", 1999, 8.2, 85.7, 24000)

	fav, err := repo.Add(1, 603)
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	// 二次收藏同一组合必须报唯一冲突
	_, err = repo.Add(1, 603)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	deleted, err := repo.Remove(1, 603)
	require.NoError(t, err)
	assert.True(t, deleted)

	// 删除后同一组合可以重新收藏
	_, err = repo.Add(1, 603)
	require.NoError(t, err)
}

func TestFavoriteRemoveNonexistent(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)

	deleted, err := repo.Remove(1, 999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFavoriteListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)

	seedMovie(t, db, 1, "First", 2000, 7.0, 10, 100)
	seedMovie(t, db, 2, "Second", 2001, 7.5, 10, 100)
	seedMovie(t, db, 3, "Third", 2002, 8.0, 10, 100)

	for _, movieID := range []int{1, 2, 3} {
		_, err := repo.Add(9, movieID)
		require.NoError(t, err)
	}
	// 其他用户的收藏不应出现
	_, err := repo.Add(8, 1)
	require.NoError(t, err)

	favorites, err := repo.ListByUser(9, 10, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	for _, fav := range favorites {
		assert.Equal(t, 9, fav.UserID)
		require.NotNil(t, fav.Movie, "关联电影必须加载")
	}

	count, err := repo.CountByUser(9)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// 分页
	page, err := repo.ListByUser(9, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestIsFavorited(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepository(db)

	seedMovie(t, db, 1, "First", 2000, 7.0, 10, 100)

	ok, err := repo.IsFavorited(1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Add(1, 1)
	require.NoError(t, err)

	ok, err = repo.IsFavorited(1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
