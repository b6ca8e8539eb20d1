package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/vidstream/internal/utils"
)

// VideoDetailsReq 视频信息编辑请求
type VideoDetailsReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListVideos 获取视频列表
// 列表反映上一次媒体库同步的结果，不会在读取时触发同步
func (h *Handler) ListVideos(c *gin.Context) {
	videos, err := h.Videos.ListAll()
	if err != nil {
		log.Printf("[ListVideos] 查询视频列表失败: %v", err)
		utils.InternalServerError(c, "获取视频列表失败")
		return
	}
	utils.Success(c, videos)
}

// GetVideo 获取视频详情
func (h *Handler) GetVideo(c *gin.Context) {
	id := c.Param("id")

	video, err := h.Videos.FindByID(id)
	if err != nil {
		log.Printf("[GetVideo] 查询视频失败: %v", err)
		utils.InternalServerError(c, "获取视频失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	utils.Success(c, video)
}

// UpdateVideo 编辑视频标题和简介
func (h *Handler) UpdateVideo(c *gin.Context) {
	id := c.Param("id")

	var req VideoDetailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	video, err := h.Videos.UpdateDetails(id, req.Title, req.Description)
	if err != nil {
		log.Printf("[UpdateVideo] 更新视频失败: %v", err)
		utils.InternalServerError(c, "更新视频失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	utils.SuccessWithMessage(c, "视频信息更新成功", video)
}

// RefreshLibrary 同步媒体库
func (h *Handler) RefreshLibrary(c *gin.Context) {
	videos, err := h.Library.Refresh(h.Config.VideoDir)
	if err != nil {
		log.Printf("[RefreshLibrary] 媒体库同步失败: %v", err)
		utils.InternalServerError(c, "媒体库同步失败")
		return
	}

	utils.SuccessWithMessage(c, "媒体库同步完成", gin.H{"videos": videos})
}
