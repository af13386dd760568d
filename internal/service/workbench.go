// Package service 命令工作台：组合目录、模板解析、校验、历史、收藏与偏好
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oltcmd/oltcmd/addone/olt"
	"github.com/oltcmd/oltcmd/internal/backup"
	"github.com/oltcmd/oltcmd/internal/catalog"
	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/converter"
	"github.com/oltcmd/oltcmd/internal/database"
	"github.com/oltcmd/oltcmd/internal/docs"
	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/internal/resolver"
	"github.com/oltcmd/oltcmd/internal/store"
	"github.com/oltcmd/oltcmd/internal/validator"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// ErrEmptyCommand 复制或收藏的命令为空
var ErrEmptyCommand = errors.New("command is empty")

// Workbench 工作台服务
type Workbench struct {
	config    *config.Config
	catalog   *catalog.Store
	history   store.HistoryLog
	favorites store.FavoritesStore
	prefs     *store.Preferences
	firmware  *resolver.Firmware
	clipboard Clipboard
	metrics   *Metrics
	registry  prometheus.Registerer
	useSQLite bool

	mutex   sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option 工作台选项
type Option func(*Workbench)

// WithClipboard 替换剪贴板实现
func WithClipboard(c Clipboard) Option {
	return func(w *Workbench) { w.clipboard = c }
}

// WithRegisterer 指标注册器
func WithRegisterer(r prometheus.Registerer) Option {
	return func(w *Workbench) { w.registry = r }
}

// WithStores 直接注入历史与收藏存储
func WithStores(h store.HistoryLog, f store.FavoritesStore) Option {
	return func(w *Workbench) {
		w.history = h
		w.favorites = f
	}
}

// NewWorkbench 按配置创建工作台；目录在 Start 时加载
func NewWorkbench(cfg *config.Config, opts ...Option) (*Workbench, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	w := &Workbench{config: cfg}
	for _, opt := range opts {
		opt(w)
	}

	w.catalog = catalog.NewStore(
		cfg.ResolvePath(cfg.Paths.Catalog),
		catalog.WithDefaults(olt.DefaultCatalog),
		catalog.WithBackup(backup.New(cfg)),
	)

	if w.history == nil || w.favorites == nil {
		switch cfg.Storage.Backend {
		case "sqlite":
			sqlCfg := cfg.Storage.SQLite
			sqlCfg.Path = cfg.ResolvePath(sqlCfg.Path)
			db, err := database.InitSQLite(sqlCfg)
			if err != nil {
				return nil, fmt.Errorf("init sqlite storage: %w", err)
			}
			w.history = database.NewHistoryStore(db)
			w.favorites = database.NewFavoriteStore(db)
			w.useSQLite = true
		case "json", "":
			w.history = store.NewHistory(cfg.ResolvePath(cfg.Paths.History))
			w.favorites = store.NewFavorites(cfg.ResolvePath(cfg.Paths.Favorites))
		default:
			return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
		}
	}

	w.prefs = store.NewPreferences(cfg.ResolvePath(cfg.Paths.Preferences), cfg.Preferences.SaveDelay, store.Screen{})

	presets := make([]resolver.FirmwarePreset, 0, len(cfg.Firmware.Presets))
	for _, p := range cfg.Firmware.Presets {
		presets = append(presets, resolver.FirmwarePreset{Model: p.Model, File: p.File})
	}
	w.firmware = resolver.NewFirmware(presets, cfg.Firmware.DefaultModel)

	if w.clipboard == nil {
		w.clipboard = DefaultClipboard()
	}
	w.metrics = newMetrics(w.registry, w)
	return w, nil
}

// Start 加载目录与厂商包，并按配置监听目录文件
func (w *Workbench) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("workbench is already running")
	}

	w.catalog.Load()
	if dir := w.config.Paths.VendorPacks; dir != "" {
		n, err := w.catalog.LoadVendorPacks(ctx, w.config.ResolvePath(dir))
		if err != nil {
			logger.Component("workbench").Warnf("vendor packs: %v", err)
		} else if n > 0 {
			logger.Component("workbench").Infof("vendor packs added %d vendors", n)
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	if w.config.Watch.Enabled {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.catalog.Watch(watchCtx, w.config.Watch.Debounce); err != nil {
				logger.Component("workbench").Warnf("catalog watch stopped: %v", err)
			}
		}()
	}

	w.running = true
	logger.Component("workbench").Infof("workbench started with %d vendors", len(w.catalog.ListVendors()))
	return nil
}

// Stop 停止监听并写出待保存的偏好
func (w *Workbench) Stop() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.prefs.Flush()
	if w.useSQLite {
		if err := database.Close(); err != nil {
			logger.Component("workbench").Warnf("close database: %v", err)
		}
	}
	logger.Component("workbench").Info("workbench stopped")
	return nil
}

// Running 是否已启动
func (w *Workbench) Running() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}

// Stats 运行状态摘要
func (w *Workbench) Stats() map[string]interface{} {
	return map[string]interface{}{
		"running":   w.Running(),
		"vendors":   len(w.catalog.ListVendors()),
		"favorites": len(w.favorites.List()),
		"storage":   w.config.Storage.Backend,
		"catalog":   w.catalog.Path(),
	}
}

// Catalog 目录存储
func (w *Workbench) Catalog() *catalog.Store { return w.catalog }

// Vendors 厂商列表（目录顺序）
func (w *Workbench) Vendors() []VendorInfo {
	cat := w.catalog.Catalog()
	out := make([]VendorInfo, 0, len(cat.Vendors))
	for _, v := range cat.Vendors {
		out = append(out, VendorInfo{Name: v.Name, Description: v.Description})
	}
	return out
}

// Tree 厂商分类树
func (w *Workbench) Tree(vendor string) ([]catalog.TreeItem, error) {
	return w.catalog.Traverse(vendor)
}

// Tips 厂商操作提示
func (w *Workbench) Tips(vendor string) []string {
	return docs.OLTTips(vendor)
}

// Select 选中命令：返回模板、参数表单、面包屑、收藏状态与提示
func (w *Workbench) Select(vendor string, path []string) (*Selection, error) {
	node, err := w.catalog.LookupCommand(vendor, path)
	if err != nil {
		return nil, err
	}
	tpl := node.Text()
	form := resolver.BuildForm(tpl)
	sel := &Selection{
		Vendor:     vendor,
		Path:       path,
		Breadcrumb: catalog.Breadcrumb(path),
		Kind:       node.Kind.String(),
		Template:   tpl,
		Form:       form,
		ParamHelp:  make(map[string]string, len(form.Placeholders)),
		IsFavorite: w.favorites.IsFavorite(tpl),
		Tips:       docs.OLTTips(vendor),
		Issues:     docs.CommonIssues(tpl),
	}
	if node.Kind == model.KindSequence {
		sel.Lines = append([]string(nil), node.Lines...)
	}
	for _, p := range form.Placeholders {
		sel.ParamHelp[p] = docs.ParamHelp(p)
	}
	if ex, ok := docs.CommandExample(tpl); ok {
		sel.Example = &ex
	}
	if form.FirmwareSelector {
		sel.FirmwareModels = w.firmware.Models()
		sel.DefaultModel = w.firmware.DefaultModel()
	}
	return sel, nil
}

// Preview 整理参数、校验并替换模板；校验错误不阻止结果
func (w *Workbench) Preview(req PreviewRequest) PreviewResult {
	form := resolver.BuildForm(req.Template)
	collected := form.Collect(resolver.Input{Values: req.Values, PonID: req.PonID, ONUModel: req.ONUModel}, w.firmware)
	cmd := resolver.Resolve(req.Template, collected.Values)
	fieldErrs := validator.Check(collected.Values)

	res := PreviewResult{
		Command:     cmd,
		Values:      collected.Values,
		Errors:      make([]string, 0, len(fieldErrs)),
		FieldErrors: fieldErrs,
		Hints:       collected.Hints,
		Unresolved:  resolver.Unresolved(cmd),
	}
	for _, fe := range fieldErrs {
		res.Errors = append(res.Errors, fe.Message)
		w.metrics.validationErrors.WithLabelValues(strings.ToLower(fe.Field)).Inc()
	}
	res.Complete = len(res.Unresolved) == 0
	w.metrics.previews.Inc()
	logger.DebugCommand("preview", "", cmd)
	return res
}

// Validate 独立校验
func (w *Workbench) Validate(values map[string]string) []validator.FieldError {
	return validator.Check(values)
}

// Copy 写入剪贴板并记录历史
func (w *Workbench) Copy(ctx context.Context, req CopyRequest) (model.HistoryEntry, error) {
	if strings.TrimSpace(req.Command) == "" {
		return model.HistoryEntry{}, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return model.HistoryEntry{}, err
	}
	if err := w.clipboard.WriteAll(req.Command); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("clipboard write: %w", err)
	}
	entry := w.history.Add(model.HistoryEntry{
		Command:  req.Command,
		OLTModel: req.Vendor,
		Category: catalog.Breadcrumb(req.Path),
	})
	w.metrics.copies.WithLabelValues(w.vendorLabel(req.Vendor)).Inc()
	logger.DebugCommand("copy", req.Vendor, req.Command)
	return entry, nil
}

// vendorLabel 指标标签只取目录中已有的厂商
func (w *Workbench) vendorLabel(vendor string) string {
	for _, name := range w.catalog.ListVendors() {
		if name == vendor {
			return vendor
		}
	}
	return otherVendorLabel
}

// AddFavorite 收藏模板；名称为空时取路径最后一级
func (w *Workbench) AddFavorite(req FavoriteRequest) (model.Favorite, error) {
	if strings.TrimSpace(req.Command) == "" {
		return model.Favorite{}, ErrEmptyCommand
	}
	name := strings.TrimSpace(req.Name)
	if name == "" && len(req.Path) > 0 {
		name = req.Path[len(req.Path)-1]
	}
	params := make(map[string]string, len(req.Params))
	for k, v := range req.Params {
		if v = strings.TrimSpace(v); v != "" {
			params[k] = v
		}
	}
	return w.favorites.Add(model.Favorite{
		Name:     name,
		Command:  req.Command,
		OLTModel: req.Vendor,
		Category: catalog.Breadcrumb(req.Path),
		Params:   params,
	}), nil
}

// RemoveFavorite 优先按 id 删除；否则删除所有同模板收藏
func (w *Workbench) RemoveFavorite(command, id string) int {
	if id != "" {
		if w.favorites.RemoveByID(id) {
			return 1
		}
		return 0
	}
	if command == "" {
		return 0
	}
	return w.favorites.RemoveByCommand(command)
}

// Favorites 全部收藏（插入顺序）
func (w *Workbench) Favorites() []model.Favorite {
	return w.favorites.List()
}

// History 最近历史；limit 为 0 时使用配置的默认条数，小于 0 返回全部
func (w *Workbench) History(limit int) []model.HistoryEntry {
	if limit == 0 {
		limit = w.config.History.RecentLimit
	}
	return w.history.Recent(limit)
}

// ClearHistory 清空历史
func (w *Workbench) ClearHistory() {
	w.history.ClearAll()
}

// Search 全目录检索
func (w *Workbench) Search(text string) []catalog.SearchResult {
	return w.catalog.Search(text)
}

// ConvertONURemoval ONU 批量删除命令
func (w *Workbench) ConvertONURemoval(input string) string {
	return converter.ConvertRemoval(input)
}

// CatalogRaw 编辑器原文
func (w *Workbench) CatalogRaw() (string, error) {
	return w.catalog.RawText()
}

// SaveCatalogText 编辑器保存
func (w *Workbench) SaveCatalogText(ctx context.Context, text string) error {
	if err := w.catalog.SaveText(ctx, text); err != nil {
		w.metrics.catalogSaves.WithLabelValues("rejected").Inc()
		return err
	}
	w.metrics.catalogSaves.WithLabelValues("ok").Inc()
	return nil
}

// ImportCatalogYAML 以 YAML 文档替换目录
func (w *Workbench) ImportCatalogYAML(ctx context.Context, data []byte) error {
	c, err := catalog.ParseYAML(data)
	if err != nil {
		w.metrics.catalogSaves.WithLabelValues("rejected").Inc()
		return err
	}
	if err := w.catalog.Save(ctx, c); err != nil {
		return err
	}
	w.metrics.catalogSaves.WithLabelValues("ok").Inc()
	return nil
}

// ReloadCatalog 从磁盘重新加载
func (w *Workbench) ReloadCatalog() error {
	return w.catalog.Reload()
}

// ExportCatalog 导出目录：json | yaml
func (w *Workbench) ExportCatalog(out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return w.catalog.ExportYAML(out)
	case "json", "":
		data, err := catalog.Encode(w.catalog.Catalog())
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ParamHelp 参数说明
func (w *Workbench) ParamHelp(param string) string {
	return docs.ParamHelp(param)
}

// Preferences 当前偏好
func (w *Workbench) Preferences() model.Preferences {
	return w.prefs.Get()
}

// UpdatePreferences 更新偏好（延迟保存）
func (w *Workbench) UpdatePreferences(p PreferencesPatch) model.Preferences {
	return w.prefs.Update(func(cur *model.Preferences) {
		if p.Theme != nil {
			cur.Theme = *p.Theme
		}
		if p.WindowPosition != nil {
			cur.WindowPosition = *p.WindowPosition
		}
		if p.SidebarPosition != nil {
			v := *p.SidebarPosition
			cur.SidebarPosition = &v
		}
	})
}

// FlushPreferences 立即写出偏好（CLI 退出前调用）
func (w *Workbench) FlushPreferences() {
	w.prefs.Flush()
}

// FirmwareModels ONU 型号
func (w *Workbench) FirmwareModels() []string {
	return w.firmware.Models()
}
