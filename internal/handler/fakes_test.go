package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/vidstream/internal/config"
	"github.com/user/vidstream/internal/handler"
	"github.com/user/vidstream/internal/middleware"
	"github.com/user/vidstream/internal/model"
	"github.com/user/vidstream/internal/router"
	"github.com/user/vidstream/internal/utils"
)

// fakeUsers 内存用户存储
type fakeUsers struct {
	seq   int
	users []*model.User
}

func (f *fakeUsers) Create(name, email, password string) (*model.User, error) {
	f.seq++
	u := &model.User{
		ID:           f.seq,
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:" + password,
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsers) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) CheckPassword(user *model.User, password string) bool {
	return user.PasswordHash == "hashed:"+password
}

func (f *fakeUsers) UpdateProfile(userID int, name, email string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Name = name
			u.Email = email
		}
	}
	return nil
}

func (f *fakeUsers) ListAll() ([]*model.User, error) {
	return f.users, nil
}

// fakeVideos 内存视频存储
type fakeVideos struct {
	videos []*model.Video
}

func (f *fakeVideos) ListAll() ([]*model.Video, error) {
	return f.videos, nil
}

func (f *fakeVideos) FindByID(id string) (*model.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVideos) UpdateDetails(id, title, description string) (*model.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			v.Title = title
			v.Description = description
			return v, nil
		}
	}
	return nil, nil
}

// fakeHistory 内存观看记录存储，语义与数据库唯一索引保持一致
type fakeHistory struct {
	seq     int
	entries []*model.WatchHistory
}

func (f *fakeHistory) Upsert(h *model.WatchHistory) error {
	for _, e := range f.entries {
		if e.UserID == h.UserID && e.VideoID == h.VideoID {
			// 原位更新，不改变插入顺序
			e.LastPosition = h.LastPosition
			e.Timestamp = h.Timestamp
			return nil
		}
	}
	f.seq++
	f.entries = append(f.entries, &model.WatchHistory{
		ID:           f.seq,
		UserID:       h.UserID,
		VideoID:      h.VideoID,
		LastPosition: h.LastPosition,
		Timestamp:    h.Timestamp,
	})
	return nil
}

func (f *fakeHistory) FindByUserAndVideo(userID int, videoID string) (*model.WatchHistory, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.VideoID == videoID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeHistory) MostRecent(userID int) (*model.WatchHistory, error) {
	var best *model.WatchHistory
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		// 时间戳相同取先插入的，与数据库排序规则一致
		if best == nil || e.Timestamp > best.Timestamp {
			best = e
		}
	}
	return best, nil
}

// fakeLibrary 媒体库同步的桩实现
type fakeLibrary struct {
	videos []*model.Video
	err    error
	calls  int
}

func (f *fakeLibrary) Refresh(dir string) ([]*model.Video, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.videos, nil
}

// testEnv 组装好路由和各个 fake 的测试环境
type testEnv struct {
	r       *gin.Engine
	users   *fakeUsers
	videos  *fakeVideos
	history *fakeHistory
	library *fakeLibrary
	cfg     *config.Config
}

func newEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
		VideoDir:  "./videos",
	}

	env := &testEnv{
		users:   &fakeUsers{},
		videos:  &fakeVideos{},
		history: &fakeHistory{},
		library: &fakeLibrary{},
		cfg:     cfg,
	}

	h := &handler.Handler{
		Users:   env.users,
		Videos:  env.videos,
		History: env.history,
		Library: env.library,
		Config:  cfg,
	}

	env.r = gin.New()
	router.RegisterRoutes(env.r, h)
	return env
}

// addUser 直接往 fake 里塞一个用户并返回其 Token
func (e *testEnv) addUser(t *testing.T, name, email string, isAdmin bool) (*model.User, string) {
	t.Helper()
	u, _ := e.users.Create(name, email, "password")
	u.IsAdmin = isAdmin
	token, err := middleware.GenerateToken(u.ID, u.Email, u.IsAdmin, e.cfg.AppSecret, e.cfg.JWTExpiry)
	if err != nil {
		t.Fatalf("生成 Token: %v", err)
	}
	return u, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应 %q: %v", w.Body.String(), err)
	}
	return resp
}
