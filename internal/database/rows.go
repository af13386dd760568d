package database

import (
	"encoding/json"
	"time"

	"github.com/oltcmd/oltcmd/internal/model"
)

// HistoryRow 复制历史表
type HistoryRow struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Command   string    `gorm:"type:text;not null"`
	OLTModel  string    `gorm:"size:128;index"`
	Category  string    `gorm:"size:512"`
	Timestamp time.Time `gorm:"index"`
}

// TableName 表名
func (HistoryRow) TableName() string { return "command_history" }

func historyRowFrom(e model.HistoryEntry) HistoryRow {
	return HistoryRow{Command: e.Command, OLTModel: e.OLTModel, Category: e.Category, Timestamp: e.Timestamp.Time}
}

func (r HistoryRow) entry() model.HistoryEntry {
	return model.HistoryEntry{
		Command:   r.Command,
		OLTModel:  r.OLTModel,
		Category:  r.Category,
		Timestamp: model.NewTimestamp(r.Timestamp.Local()),
	}
}

// FavoriteRow 收藏表；Seq 保持插入顺序，Params 以 JSON 文本保存
type FavoriteRow struct {
	Seq      uint      `gorm:"primaryKey;autoIncrement"`
	ID       string    `gorm:"size:36;uniqueIndex"`
	Name     string    `gorm:"size:255;index"`
	Command  string    `gorm:"type:text;index"`
	OLTModel string    `gorm:"size:128"`
	Category string    `gorm:"size:512"`
	Params   string    `gorm:"type:text"`
	AddedOn  time.Time `gorm:"index"`
}

// TableName 表名
func (FavoriteRow) TableName() string { return "favorites" }

func favoriteRowFrom(f model.Favorite) FavoriteRow {
	params, _ := json.Marshal(f.Params)
	return FavoriteRow{
		ID:       f.ID,
		Name:     f.Name,
		Command:  f.Command,
		OLTModel: f.OLTModel,
		Category: f.Category,
		Params:   string(params),
		AddedOn:  f.AddedOn.Time,
	}
}

func (r FavoriteRow) favorite() model.Favorite {
	params := map[string]string{}
	if r.Params != "" {
		_ = json.Unmarshal([]byte(r.Params), &params)
	}
	return model.Favorite{
		ID:       r.ID,
		Name:     r.Name,
		Command:  r.Command,
		OLTModel: r.OLTModel,
		Category: r.Category,
		Params:   params,
		AddedOn:  model.NewTimestamp(r.AddedOn.Local()),
	}
}
