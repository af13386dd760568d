package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oltcmd/oltcmd/pkg/logger"
)

// Watch 监听目录文件的外部修改并在防抖后重新加载，直到 ctx 结束
// 监听所在目录，编辑器以"写临时文件再重命名"方式保存时也能捕获
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog watch init failed: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("catalog watch add failed: %w", err)
	}
	target := filepath.Clean(s.path)
	log := logger.Component("catalog")

	var timer *time.Timer
	trigger := func() {
		if err := s.Reload(); err != nil {
			log.Warnf("catalog reload failed: %v", err)
		}
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, trigger)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("catalog watch error: %v", err)
		}
	}
}
