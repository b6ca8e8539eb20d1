package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/user/vidstream/internal/model"
	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// ListAll 获取全部视频，按标题排序
func (r *VideoRepository) ListAll() ([]*model.Video, error) {
	var videos []*model.Video
	err := r.db.Order("title ASC").Find(&videos).Error
	return videos, err
}

// FindByID 根据 ID 查找视频
func (r *VideoRepository) FindByID(id string) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// UpdateDetails 更新视频标题和简介
func (r *VideoRepository) UpdateDetails(id, title, description string) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       title,
		"description": description,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}

// AddVideos 批量插入新视频记录
func (r *VideoRepository) AddVideos(videos []*model.Video) error {
	if len(videos) == 0 {
		return nil
	}
	return r.db.Create(videos).Error
}

// RemoveVideos 批量删除视频并级联清理所有用户的观看记录
// 两步在同一事务内完成，避免出现观看记录指向已删除视频的中间状态
func (r *VideoRepository) RemoveVideos(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM watch_histories WHERE video_id = ANY($1)`, pq.Array(ids)).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM videos WHERE id = ANY($1)`, pq.Array(ids)).Error
	})
}
