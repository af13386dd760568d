package service

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard 剪贴板访问
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// SystemClipboard 系统剪贴板（Linux 需要 xclip/xsel/wl-copy）
type SystemClipboard struct{}

// WriteAll 写入剪贴板
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// ReadAll 读取剪贴板
func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// Available 当前环境是否支持系统剪贴板
func (SystemClipboard) Available() bool { return !clipboard.Unsupported }

// MemoryClipboard 进程内剪贴板（无图形环境或测试）
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// WriteAll 写入
func (m *MemoryClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// ReadAll 读取
func (m *MemoryClipboard) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// DefaultClipboard 系统剪贴板不可用时退回进程内实现
func DefaultClipboard() Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}
