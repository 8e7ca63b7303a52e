package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Favorite 收藏（用户与电影的唯一组合）
type Favorite struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_user_movie"`
	MovieID   int       `json:"movie_id" gorm:"column:movie_id;uniqueIndex:idx_user_movie"`
	CreatedAt time.Time `json:"created_at"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID"` // 关联查询时填充
}
