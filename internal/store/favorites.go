package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oltcmd/oltcmd/internal/model"
)

// FavoritesStore 收藏
type FavoritesStore interface {
	Add(fav model.Favorite) model.Favorite
	// RemoveByCommand 删除所有模板相同的收藏，返回删除条数
	RemoveByCommand(command string) int
	RemoveByID(id string) bool
	IsFavorite(command string) bool
	FindByName(name string) []model.Favorite
	// List 插入顺序
	List() []model.Favorite
	Recent(limit int) []model.Favorite
}

// Favorites JSON 文件实现
type Favorites struct {
	list *jsonList[model.Favorite]
	now  func() time.Time
}

// NewFavorites 加载收藏文件
func NewFavorites(path string) *Favorites {
	return &Favorites{list: newJSONList[model.Favorite](path), now: time.Now}
}

// Add 分配 id 与收藏时间后追加
func (f *Favorites) Add(fav model.Favorite) model.Favorite {
	fav = PrepareFavorite(fav, f.now)
	f.list.mu.Lock()
	defer f.list.mu.Unlock()
	f.list.items = append(f.list.items, fav)
	f.list.persist()
	return fav
}

// RemoveByCommand 按模板文本删除（同一模板的多条收藏会一起删除）
func (f *Favorites) RemoveByCommand(command string) int {
	return f.removeWhere(func(fav model.Favorite) bool { return fav.Command == command })
}

// RemoveByID 按 id 删除单条
func (f *Favorites) RemoveByID(id string) bool {
	if id == "" {
		return false
	}
	return f.removeWhere(func(fav model.Favorite) bool { return fav.ID == id }) > 0
}

func (f *Favorites) removeWhere(match func(model.Favorite) bool) int {
	f.list.mu.Lock()
	defer f.list.mu.Unlock()
	kept := f.list.items[:0:0]
	for _, fav := range f.list.items {
		if !match(fav) {
			kept = append(kept, fav)
		}
	}
	removed := len(f.list.items) - len(kept)
	if removed > 0 {
		f.list.items = kept
		f.list.persist()
	}
	return removed
}

// IsFavorite 模板是否已收藏
func (f *Favorites) IsFavorite(command string) bool {
	f.list.mu.Lock()
	defer f.list.mu.Unlock()
	for _, fav := range f.list.items {
		if fav.Command == command {
			return true
		}
	}
	return false
}

// FindByName 名称不唯一，返回全部匹配
func (f *Favorites) FindByName(name string) []model.Favorite {
	f.list.mu.Lock()
	defer f.list.mu.Unlock()
	var out []model.Favorite
	for _, fav := range f.list.items {
		if fav.Name == name {
			out = append(out, fav)
		}
	}
	return out
}

// List 全部收藏
func (f *Favorites) List() []model.Favorite {
	f.list.mu.Lock()
	defer f.list.mu.Unlock()
	return f.list.snapshot()
}

// Recent 按收藏时间倒序
func (f *Favorites) Recent(limit int) []model.Favorite {
	return SortFavorites(f.List(), limit)
}

// PrepareFavorite 补全 id、收藏时间与参数表
func PrepareFavorite(fav model.Favorite, now func() time.Time) model.Favorite {
	if fav.ID == "" {
		fav.ID = uuid.NewString()
	}
	if fav.AddedOn.IsZero() {
		fav.AddedOn = model.NewTimestamp(now())
	}
	if fav.Params == nil {
		fav.Params = map[string]string{}
	}
	return fav
}

// SortFavorites 按收藏时间倒序（相同则后插入的在前）
func SortFavorites(items []model.Favorite, limit int) []model.Favorite {
	out := make([]model.Favorite, len(items))
	for i := range items {
		out[len(items)-1-i] = items[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedOn.After(out[j].AddedOn.Time)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
