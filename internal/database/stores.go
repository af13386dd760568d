package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/internal/store"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

const (
	retryAttempts = 5
	retrySleep    = 50 * time.Millisecond
)

// HistoryStore SQLite 历史记录；错误只记录日志
type HistoryStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewHistoryStore 创建历史存储
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Add 追加记录
func (s *HistoryStore) Add(entry model.HistoryEntry) model.HistoryEntry {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = model.NewTimestamp(s.now())
	}
	row := historyRowFrom(entry)
	if err := WithRetry(s.db, func(tx *gorm.DB) error { return tx.Create(&row).Error }, retryAttempts, retrySleep); err != nil {
		logger.Component("database").Warnf("insert history failed: %v", err)
	}
	return entry
}

// Recent 按时间倒序（相同时间 id 大者在前）
func (s *HistoryStore) Recent(limit int) []model.HistoryEntry {
	var rows []HistoryRow
	q := s.db.Order("timestamp DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		logger.Component("database").Warnf("query history failed: %v", err)
		return nil
	}
	out := make([]model.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry())
	}
	return out
}

// ClearAll 清空历史
func (s *HistoryStore) ClearAll() {
	err := WithRetry(s.db, func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&HistoryRow{}).Error
	}, retryAttempts, retrySleep)
	if err != nil {
		logger.Component("database").Warnf("clear history failed: %v", err)
	}
}

// FavoriteStore SQLite 收藏
type FavoriteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFavoriteStore 创建收藏存储
func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db, now: time.Now}
}

// Add 分配 id 后写入
func (s *FavoriteStore) Add(fav model.Favorite) model.Favorite {
	fav = store.PrepareFavorite(fav, s.now)
	row := favoriteRowFrom(fav)
	if err := WithRetry(s.db, func(tx *gorm.DB) error { return tx.Create(&row).Error }, retryAttempts, retrySleep); err != nil {
		logger.Component("database").Warnf("insert favorite failed: %v", err)
	}
	return fav
}

// RemoveByCommand 删除所有模板相同的收藏
func (s *FavoriteStore) RemoveByCommand(command string) int {
	return s.deleteWhere("command = ?", command)
}

// RemoveByID 按 id 删除
func (s *FavoriteStore) RemoveByID(id string) bool {
	if id == "" {
		return false
	}
	return s.deleteWhere("id = ?", id) > 0
}

func (s *FavoriteStore) deleteWhere(query string, arg interface{}) int {
	var affected int64
	err := WithRetry(s.db, func(tx *gorm.DB) error {
		res := tx.Where(query, arg).Delete(&FavoriteRow{})
		affected = res.RowsAffected
		return res.Error
	}, retryAttempts, retrySleep)
	if err != nil {
		logger.Component("database").Warnf("delete favorite failed: %v", err)
		return 0
	}
	return int(affected)
}

// IsFavorite 模板是否已收藏
func (s *FavoriteStore) IsFavorite(command string) bool {
	var n int64
	if err := s.db.Model(&FavoriteRow{}).Where("command = ?", command).Count(&n).Error; err != nil {
		logger.Component("database").Warnf("count favorites failed: %v", err)
		return false
	}
	return n > 0
}

// FindByName 名称匹配的收藏
func (s *FavoriteStore) FindByName(name string) []model.Favorite {
	return s.find(s.db.Where("name = ?", name).Order("seq ASC"))
}

// List 插入顺序
func (s *FavoriteStore) List() []model.Favorite {
	return s.find(s.db.Order("seq ASC"))
}

// Recent 按收藏时间倒序
func (s *FavoriteStore) Recent(limit int) []model.Favorite {
	q := s.db.Order("added_on DESC").Order("seq DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return s.find(q)
}

func (s *FavoriteStore) find(q *gorm.DB) []model.Favorite {
	var rows []FavoriteRow
	if err := q.Find(&rows).Error; err != nil {
		logger.Component("database").Warnf("query favorites failed: %v", err)
		return nil
	}
	out := make([]model.Favorite, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.favorite())
	}
	return out
}

var (
	_ store.HistoryLog     = (*HistoryStore)(nil)
	_ store.FavoritesStore = (*FavoriteStore)(nil)
)
