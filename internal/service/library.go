package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/vidstream/internal/model"
	"golang.org/x/sync/errgroup"
)

// supportedExts 识别为视频的扩展名
var supportedExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
}

// filePathPrefix 视频文件在存储中的相对路径前缀
const filePathPrefix = "videos/"

// LibraryStore 媒体库同步所需的存储操作
// RemoveVideos 必须把视频删除和观看记录级联清理放在同一事务内
type LibraryStore interface {
	ListAll() ([]*model.Video, error)
	AddVideos(videos []*model.Video) error
	RemoveVideos(ids []string) error
}

// LibraryService 媒体库同步服务
// 以视频目录中的文件为准，协调数据库中的视频记录
type LibraryService struct {
	store LibraryStore
}

// NewLibraryService 创建媒体库同步服务
func NewLibraryService(store LibraryStore) *LibraryService {
	return &LibraryService{store: store}
}

// Refresh 同步媒体库：删除目录中已不存在的视频记录（级联清理观看记录），
// 为新出现的文件创建记录，返回同步后的完整视频列表
func (s *LibraryService) Refresh(dir string) ([]*model.Video, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取视频目录失败: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}

	existing, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}

	staleIDs, newVideos := diffLibrary(existing, files)

	// 删除和新增互不依赖，可以并发执行；
	// 级联清理在 RemoveVideos 的事务内完成，不会暴露悬空引用
	g := new(errgroup.Group)
	g.Go(func() error {
		return s.store.RemoveVideos(staleIDs)
	})
	g.Go(func() error {
		return s.store.AddVideos(newVideos)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.store.ListAll()
}

// diffLibrary 计算目录文件与数据库记录的差异：
// 返回目录中已消失的记录 ID 和需要新建的视频记录
func diffLibrary(existing []*model.Video, files []string) (staleIDs []string, newVideos []*model.Video) {
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f] = true
	}

	persisted := make(map[string]bool, len(existing))
	for _, v := range existing {
		persisted[v.FilePath] = true
		if !onDisk[filepath.Base(v.FilePath)] {
			staleIDs = append(staleIDs, v.ID)
		}
	}

	for _, f := range files {
		filePath := filePathPrefix + f
		if persisted[filePath] {
			continue
		}
		// 默认用去掉扩展名的文件名作为标题
		newVideos = append(newVideos, &model.Video{
			ID:       uuid.NewString(),
			Title:    strings.TrimSuffix(f, filepath.Ext(f)),
			FilePath: filePath,
		})
	}

	return staleIDs, newVideos
}

// StartAutoSync 启动后台定时同步任务，interval 为 0 时不启动
func (s *LibraryService) StartAutoSync(dir string, interval time.Duration) {
	if interval <= 0 {
		return
	}

	log.Printf("[LibraryService] 启动后台媒体库同步，间隔 %v", interval)
	ticker := time.NewTicker(interval)

	// 启动时先运行一次
	go s.runSync(dir)

	go func() {
		for range ticker.C {
			s.runSync(dir)
		}
	}()
}

func (s *LibraryService) runSync(dir string) {
	videos, err := s.Refresh(dir)
	if err != nil {
		log.Printf("[LibraryService] 媒体库同步失败: %v", err)
		return
	}
	log.Printf("[LibraryService] 媒体库同步完成，当前共 %d 个视频", len(videos))
}
