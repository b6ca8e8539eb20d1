package repository

import (
	"errors"

	"github.com/user/vidstream/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 更新或插入观看记录
// 冲突时只覆盖进度和时间戳，行 ID 不变，记录在序列中的位置因此保持不变
func (r *HistoryRepository) Upsert(h *model.WatchHistory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_position", "timestamp"}),
	}).Create(h).Error
}

// FindByUserAndVideo 查找用户对某个视频的观看记录
func (r *HistoryRepository) FindByUserAndVideo(userID int, videoID string) (*model.WatchHistory, error) {
	var h model.WatchHistory
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// MostRecent 获取用户时间戳最大的观看记录
// 时间戳相同时取先插入的一条，保证结果确定
func (r *HistoryRepository) MostRecent(userID int) (*model.WatchHistory, error) {
	var h model.WatchHistory
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC, id ASC").
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// ListByUser 获取用户全部观看记录，按插入顺序排列
func (r *HistoryRepository) ListByUser(userID int) ([]*model.WatchHistory, error) {
	var histories []*model.WatchHistory
	err := r.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&histories).Error
	return histories, err
}
