package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/vidstream/internal/middleware"
	"github.com/user/vidstream/internal/model"
	"github.com/user/vidstream/internal/utils"
)

// SignupReq 注册请求
type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileReq 资料更新请求
type ProfileReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// WatchHistoryReq 观看记录上报请求
type WatchHistoryReq struct {
	VideoID      string  `json:"videoId" binding:"required"`
	LastPosition float64 `json:"lastPosition" binding:"gte=0"`
	Timestamp    int64   `json:"timestamp" binding:"required"`
}

// ListUsers 获取所有用户（密码哈希不会被序列化）
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListAll()
	if err != nil {
		log.Printf("[ListUsers] 查询用户列表失败: %v", err)
		utils.InternalServerError(c, "获取用户列表失败")
		return
	}
	utils.Success(c, users)
}

// Signup 用户注册
func (h *Handler) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	// 检查邮箱是否已被注册
	existing, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		log.Printf("[Signup] 查询用户失败: %v", err)
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}
	if existing != nil {
		utils.Conflict(c, "该邮箱已被注册")
		return
	}

	user, err := h.Users.Create(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("[Signup] 创建用户失败: %v", err)
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.IsAdmin, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		log.Printf("[Signup] 生成 Token 失败: %v", err)
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	utils.SuccessWithMessage(c, "注册成功", gin.H{"token": token})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		log.Printf("[Login] 查询用户失败: %v", err)
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if !h.Users.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.IsAdmin, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		log.Printf("[Login] 生成 Token 失败: %v", err)
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	utils.SuccessWithMessage(c, "登录成功", gin.H{
		"token": token,
		"user":  user,
	})
}

// UpdateProfile 更新用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		log.Printf("[UpdateProfile] 查询用户失败: %v", err)
		utils.InternalServerError(c, "更新资料失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	// 检查新邮箱是否已被其他账号使用
	existing, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		log.Printf("[UpdateProfile] 查询邮箱失败: %v", err)
		utils.InternalServerError(c, "更新资料失败")
		return
	}
	if existing != nil && existing.ID != userID {
		utils.Conflict(c, "该邮箱已被其他账号使用")
		return
	}

	if err := h.Users.UpdateProfile(userID, req.Name, req.Email); err != nil {
		log.Printf("[UpdateProfile] 更新用户失败: %v", err)
		utils.InternalServerError(c, "更新资料失败")
		return
	}

	updated, err := h.Users.FindByID(userID)
	if err != nil {
		log.Printf("[UpdateProfile] 查询用户失败: %v", err)
		utils.InternalServerError(c, "更新资料失败")
		return
	}

	utils.SuccessWithMessage(c, "资料更新成功", updated)
}

// LastViewed 获取最近观看的视频
func (h *Handler) LastViewed(c *gin.Context) {
	userID := middleware.GetUserID(c)

	entry, err := h.History.MostRecent(userID)
	if err != nil {
		log.Printf("[LastViewed] 查询观看记录失败: %v", err)
		utils.InternalServerError(c, "获取最近观看失败")
		return
	}
	if entry == nil {
		utils.SuccessWithMessage(c, "暂无观看记录", nil)
		return
	}

	// 级联删除保证记录不会指向已删除的视频，这里仍按找不到处理以防万一
	video, err := h.Videos.FindByID(entry.VideoID)
	if err != nil {
		log.Printf("[LastViewed] 查询视频失败: %v", err)
		utils.InternalServerError(c, "获取最近观看失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	utils.Success(c, model.LastViewed{
		VideoID:      video.ID,
		Title:        video.Title,
		FilePath:     video.FilePath,
		Description:  video.Description,
		LastPosition: entry.LastPosition,
	})
}

// UpsertWatchHistory 更新观看记录
func (h *Handler) UpsertWatchHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req WatchHistoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		log.Printf("[UpsertWatchHistory] 查询用户失败: %v", err)
		utils.InternalServerError(c, "更新观看记录失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	video, err := h.Videos.FindByID(req.VideoID)
	if err != nil {
		log.Printf("[UpsertWatchHistory] 查询视频失败: %v", err)
		utils.InternalServerError(c, "更新观看记录失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	err = h.History.Upsert(&model.WatchHistory{
		UserID:       userID,
		VideoID:      req.VideoID,
		LastPosition: req.LastPosition,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		log.Printf("[UpsertWatchHistory] 保存观看记录失败: %v", err)
		utils.InternalServerError(c, "更新观看记录失败")
		return
	}

	utils.SuccessWithMessage(c, "观看记录已更新", nil)
}

// WatchHistoryByVideo 获取用户对某个视频的观看记录
func (h *Handler) WatchHistoryByVideo(c *gin.Context) {
	userID := middleware.GetUserID(c)
	videoID := c.Param("videoId")

	user, err := h.Users.FindByID(userID)
	if err != nil {
		log.Printf("[WatchHistoryByVideo] 查询用户失败: %v", err)
		utils.InternalServerError(c, "获取观看记录失败")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	entry, err := h.History.FindByUserAndVideo(userID, videoID)
	if err != nil {
		log.Printf("[WatchHistoryByVideo] 查询观看记录失败: %v", err)
		utils.InternalServerError(c, "获取观看记录失败")
		return
	}
	if entry == nil {
		utils.NotFound(c, "该视频暂无观看记录")
		return
	}

	utils.Success(c, entry)
}
