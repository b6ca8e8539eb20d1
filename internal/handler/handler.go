package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/user/vidstream/internal/config"
	"github.com/user/vidstream/internal/model"
	"github.com/user/vidstream/internal/repository"
	"github.com/user/vidstream/internal/service"
)

// UserStore 用户存储操作
type UserStore interface {
	Create(name, email, password string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
	UpdateProfile(userID int, name, email string) error
	ListAll() ([]*model.User, error)
}

// VideoStore 视频存储操作
type VideoStore interface {
	ListAll() ([]*model.Video, error)
	FindByID(id string) (*model.Video, error)
	UpdateDetails(id, title, description string) (*model.Video, error)
}

// HistoryStore 观看记录存储操作
type HistoryStore interface {
	Upsert(h *model.WatchHistory) error
	FindByUserAndVideo(userID int, videoID string) (*model.WatchHistory, error)
	MostRecent(userID int) (*model.WatchHistory, error)
}

// LibraryRefresher 媒体库同步入口
type LibraryRefresher interface {
	Refresh(dir string) ([]*model.Video, error)
}

// Handler HTTP 处理器
type Handler struct {
	Users   UserStore
	Videos  VideoStore
	History HistoryStore
	Library LibraryRefresher
	Config  *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, library *service.LibraryService, cfg *config.Config) *Handler {
	return &Handler{
		Users:   repos.User,
		Videos:  repos.Video,
		History: repos.History,
		Library: library,
		Config:  cfg,
	}
}

// bindError 把绑定校验错误转成对外的提示信息
func bindError(err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		return fmt.Sprintf("参数 %s 不合法", verr[0].Field())
	}
	return "无效的请求数据"
}
