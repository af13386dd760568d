package store

import (
	"sort"
	"time"

	"github.com/oltcmd/oltcmd/internal/model"
)

// DefaultRecentLimit 最近记录默认条数
const DefaultRecentLimit = 20

// HistoryLog 复制历史
type HistoryLog interface {
	Add(entry model.HistoryEntry) model.HistoryEntry
	// Recent 按时间倒序；limit <= 0 返回全部
	Recent(limit int) []model.HistoryEntry
	ClearAll()
}

// History JSON 文件实现
type History struct {
	list *jsonList[model.HistoryEntry]
	now  func() time.Time
}

// NewHistory 加载历史文件；文件缺失或损坏时为空
func NewHistory(path string) *History {
	return &History{list: newJSONList[model.HistoryEntry](path), now: time.Now}
}

// Add 追加记录；时间戳为空时取当前时间
func (h *History) Add(entry model.HistoryEntry) model.HistoryEntry {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = model.NewTimestamp(h.now())
	}
	h.list.mu.Lock()
	defer h.list.mu.Unlock()
	h.list.items = append(h.list.items, entry)
	h.list.persist()
	return entry
}

// Recent 最近记录
func (h *History) Recent(limit int) []model.HistoryEntry {
	h.list.mu.Lock()
	items := h.list.snapshot()
	h.list.mu.Unlock()
	return SortHistory(items, limit)
}

// ClearAll 清空并写回空数组
func (h *History) ClearAll() {
	h.list.mu.Lock()
	defer h.list.mu.Unlock()
	h.list.items = nil
	h.list.persist()
}

// SortHistory 按时间倒序排列（时间相同则后插入的在前），并截断
func SortHistory(items []model.HistoryEntry, limit int) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(items))
	for i := range items {
		out[len(items)-1-i] = items[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp.Time)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
