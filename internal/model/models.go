package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Video 视频模型
// FilePath 是相对存储根的路径（如 videos/foo.mp4），媒体库同步时以它作为去重依据
type Video struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FilePath    string `json:"filePath" gorm:"uniqueIndex"`
}

// WatchHistory 观看记录
// (user_id, video_id) 唯一索引保证每个用户对同一视频最多一条记录
type WatchHistory struct {
	ID           int     `json:"-" gorm:"primaryKey"`
	UserID       int     `json:"-" gorm:"uniqueIndex:idx_user_video"`
	VideoID      string  `json:"videoId" gorm:"uniqueIndex:idx_user_video;size:36"`
	LastPosition float64 `json:"lastPosition"`
	Timestamp    int64   `json:"timestamp"`
}

// LastViewed 最近观看（关联视频信息后的视图）
type LastViewed struct {
	VideoID      string  `json:"videoId"`
	Title        string  `json:"title"`
	FilePath     string  `json:"filePath"`
	Description  string  `json:"description"`
	LastPosition float64 `json:"lastPosition"`
}
