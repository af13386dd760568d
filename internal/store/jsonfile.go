// Package store 基于 JSON 文件的历史、收藏与偏好存储
// 每次变更整体重写文件；写入失败只记录日志
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oltcmd/oltcmd/internal/util"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// jsonList 以 JSON 数组保存的有序列表
type jsonList[T any] struct {
	mu    sync.Mutex
	path  string
	items []T
}

func newJSONList[T any](path string) *jsonList[T] {
	l := &jsonList[T]{path: path}
	if err := readJSON(path, &l.items); err != nil {
		if !os.IsNotExist(err) {
			logger.Component("store").Warnf("load %s failed, starting empty: %v", path, err)
		}
		l.items = nil
	}
	return l
}

// persist 调用方需持有锁
func (l *jsonList[T]) persist() {
	items := l.items
	if items == nil {
		items = []T{}
	}
	if err := writeJSON(l.path, items); err != nil {
		logger.Component("store").Warnf("save %s failed: %v", l.path, err)
	}
}

func (l *jsonList[T]) snapshot() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := util.EnsureUTF8Bytes(data)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// EncodeJSON 两空格缩进、不转义 HTML 与非 ASCII 字符
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeJSON(path string, v interface{}) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
