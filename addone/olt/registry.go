package olt

import (
	"sort"
	"sync"

	"github.com/oltcmd/oltcmd/internal/model"
)

// 注册中心，按注册顺序保存各厂商 OLT 的内置命令目录
var (
	registryMu sync.RWMutex
	registry   = map[string]Plugin{}
	order      []string
)

// Register 注册厂商插件；同名重复注册时覆盖但保留原顺序
func Register(name string, plugin Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; !ok {
		order = append(order, name)
	}
	registry[name] = plugin
}

// Get 获取指定平台插件
func Get(name string) (Plugin, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names 已注册平台（注册顺序）
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), order...)
}

// DefaultCatalog 由所有已注册插件组装首次运行时写出的默认目录
func DefaultCatalog() *model.Catalog {
	registryMu.RLock()
	defer registryMu.RUnlock()
	plugins := make([]Plugin, 0, len(order))
	for _, name := range order {
		plugins = append(plugins, registry[name])
	}
	sort.SliceStable(plugins, func(i, j int) bool { return plugins[i].Rank() < plugins[j].Rank() })

	c := model.NewCatalog()
	for _, p := range plugins {
		c.SetVendor(&model.Vendor{
			Name:        p.Vendor(),
			Description: p.Description(),
			Categories:  p.Categories(),
		})
	}
	return c
}
