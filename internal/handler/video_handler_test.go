package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/user/vidstream/internal/model"
)

func TestListVideos(t *testing.T) {
	env := newEnv()
	env.videos.videos = []*model.Video{
		{ID: "vid-a", Title: "A", FilePath: "videos/a.mp4"},
		{ID: "vid-b", Title: "B", FilePath: "videos/b.mp4"},
	}

	w := env.request(t, http.MethodGet, "/api/videos", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	list, ok := resp.Data.([]interface{})
	if !ok || len(list) != 2 {
		t.Fatalf("期望 2 个视频，实际 %v", resp.Data)
	}
}

func TestGetVideo(t *testing.T) {
	env := newEnv()
	env.videos.videos = []*model.Video{
		{ID: "vid-a", Title: "A", Description: "简介", FilePath: "videos/a.mp4"},
	}

	w := env.request(t, http.MethodGet, "/api/videos/vid-a", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if data["id"] != "vid-a" || data["filePath"] != "videos/a.mp4" {
		t.Fatalf("视频内容不正确: %v", data)
	}

	if w := env.request(t, http.MethodGet, "/api/videos/vid-x", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("不存在的视频期望 404，实际 %d", w.Code)
	}
}

func TestUpdateVideo(t *testing.T) {
	env := newEnv()
	_, adminToken := env.addUser(t, "管理员", "admin@example.com", true)
	env.videos.videos = []*model.Video{
		{ID: "vid-a", Title: "旧标题", FilePath: "videos/a.mp4"},
	}

	w := env.request(t, http.MethodPut, "/api/videos/vid-a", adminToken, map[string]interface{}{
		"title":       "新标题",
		"description": "新简介",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if env.videos.videos[0].Title != "新标题" || env.videos.videos[0].Description != "新简介" {
		t.Fatalf("视频信息未更新: %+v", env.videos.videos[0])
	}
	// 文件路径不受编辑影响
	if env.videos.videos[0].FilePath != "videos/a.mp4" {
		t.Fatalf("文件路径不应被修改: %s", env.videos.videos[0].FilePath)
	}

	if w := env.request(t, http.MethodPut, "/api/videos/vid-x", adminToken, map[string]interface{}{
		"title": "任意",
	}); w.Code != http.StatusNotFound {
		t.Fatalf("不存在的视频期望 404，实际 %d", w.Code)
	}
}

func TestUpdateVideo_RequiresAdmin(t *testing.T) {
	env := newEnv()
	_, userToken := env.addUser(t, "普通用户", "user@example.com", false)

	w := env.request(t, http.MethodPut, "/api/videos/vid-a", userToken, map[string]interface{}{
		"title": "任意",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("普通用户期望 403，实际 %d", w.Code)
	}
}

func TestRefreshLibrary(t *testing.T) {
	env := newEnv()
	_, adminToken := env.addUser(t, "管理员", "admin@example.com", true)
	env.library.videos = []*model.Video{
		{ID: "vid-a", Title: "A", FilePath: "videos/a.mp4"},
	}

	w := env.request(t, http.MethodPost, "/api/videos/refresh", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if env.library.calls != 1 {
		t.Fatalf("期望触发 1 次同步，实际 %d", env.library.calls)
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if list, ok := data["videos"].([]interface{}); !ok || len(list) != 1 {
		t.Fatalf("期望返回同步后的视频列表，实际 %v", resp.Data)
	}
}

func TestRefreshLibrary_Failure(t *testing.T) {
	env := newEnv()
	_, adminToken := env.addUser(t, "管理员", "admin@example.com", true)
	env.library.err = errors.New("目录不可读")

	w := env.request(t, http.MethodPost, "/api/videos/refresh", adminToken, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("同步失败期望 500，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Success {
		t.Fatal("失败响应不应标记为成功")
	}
}
