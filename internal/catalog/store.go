// Package catalog 命令目录的加载、保存、遍历与检索
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oltcmd/oltcmd/internal/backup"
	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/internal/util"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// DefaultBreadcrumb 无分类路径时的面包屑
const DefaultBreadcrumb = "Geral"

// BreadcrumbSeparator 面包屑分隔符
const BreadcrumbSeparator = " > "

// Store 目录存储；内存中的目录只在保存/重新加载成功后整体替换
type Store struct {
	mu       sync.RWMutex
	path     string
	catalog  *model.Catalog
	defaults func() *model.Catalog
	backup   backup.Writer
	// lastData 最近一次写入或读取的文件内容，用于忽略自身写入触发的监听事件
	lastData []byte
	onChange []func(*model.Catalog)
}

// Option 存储选项
type Option func(*Store)

// WithDefaults 文件缺失或损坏时使用的默认目录
func WithDefaults(fn func() *model.Catalog) Option {
	return func(s *Store) { s.defaults = fn }
}

// WithBackup 每次保存后写出快照
func WithBackup(w backup.Writer) Option {
	return func(s *Store) { s.backup = w }
}

// NewStore 创建存储，调用 Load 前目录为空
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, catalog: model.NewCatalog(), defaults: func() *model.Catalog { return model.NewCatalog() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path 目录文件路径
func (s *Store) Path() string { return s.path }

// OnChange 注册目录替换后的回调
func (s *Store) OnChange(fn func(*model.Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Load 读取目录文件；缺失或无法解析时回退为默认目录并写出，错误只记录日志
func (s *Store) Load() *model.Catalog {
	log := logger.Component("catalog")
	data, err := os.ReadFile(s.path)
	if err == nil {
		text := util.EnsureUTF8Bytes(data)
		c, perr := Parse(text)
		if perr == nil {
			s.replace(c, data)
			log.Infof("catalog loaded: %s (%d vendors)", s.path, len(c.Vendors))
			return c.Clone()
		}
		log.Warnf("catalog %s invalid, using defaults: %v", s.path, perr)
	} else if !os.IsNotExist(err) {
		log.Warnf("catalog %s unreadable, using defaults: %v", s.path, err)
	}

	c := s.defaults()
	out, err := Encode(c)
	if err != nil {
		log.Warnf("encode default catalog failed: %v", err)
		s.replace(c, nil)
		return c.Clone()
	}
	if err := writeFile(s.path, out); err != nil {
		log.Warnf("write default catalog failed: %v", err)
		out = nil
	}
	s.replace(c, out)
	return c.Clone()
}

// Catalog 当前目录的副本
func (s *Store) Catalog() *model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

// SaveText 编辑器保存：必须是合法 JSON 且符合目录结构，失败时不写文件、不替换内存目录
func (s *Store) SaveText(ctx context.Context, text string) error {
	text = util.EnsureUTF8(text)
	c, err := Parse(text)
	if err != nil {
		return err
	}
	return s.Save(ctx, c)
}

// Save 写入结构化目录
func (s *Store) Save(ctx context.Context, c *model.Catalog) error {
	if c == nil {
		return fmt.Errorf("nil catalog")
	}
	out, err := Encode(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := writeFile(s.path, out); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	s.replace(c.Clone(), out)
	logger.Component("catalog").Infof("catalog saved: %s (%d vendors)", s.path, len(c.Vendors))

	if s.backup != nil {
		obj, err := s.backup.Snapshot(ctx, filepath.Base(s.path), out)
		if err != nil {
			logger.Component("catalog").Warnf("catalog backup failed: %v", err)
		} else {
			logger.Component("catalog").Debugf("catalog backup stored: %s", obj.URI)
		}
	}
	return nil
}

// RawText 编辑器显示的文件原文；文件不存在时返回当前目录的编码结果
func (s *Store) RawText() (string, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		return util.EnsureUTF8Bytes(data), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	out, err := Encode(s.Catalog())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Reload 从磁盘重新加载；解析失败时保留内存目录并返回 ParseError
// 内容与最近一次读写相同时不做任何事
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	s.mu.RLock()
	same := s.lastData != nil && bytes.Equal(s.lastData, data)
	s.mu.RUnlock()
	if same {
		return nil
	}
	c, err := Parse(util.EnsureUTF8Bytes(data))
	if err != nil {
		return err
	}
	s.replace(c, data)
	logger.Component("catalog").Infof("catalog reloaded: %s", s.path)
	return nil
}

func (s *Store) replace(c *model.Catalog, data []byte) {
	s.mu.Lock()
	s.catalog = c
	s.lastData = data
	hooks := make([]func(*model.Catalog), len(s.onChange))
	copy(hooks, s.onChange)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(c.Clone())
	}
}

// ListVendors 厂商名称（文件中的顺序）
func (s *Store) ListVendors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.VendorNames()
}

// Vendor 厂商记录副本
func (s *Store) Vendor(name string) (*model.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.catalog.Vendor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, name)
	}
	return &model.Vendor{Name: v.Name, Description: v.Description, Categories: v.Categories.Clone()}, nil
}

// Lookup 按分类路径查找节点（可能是分组或命令）
func (s *Store) Lookup(vendor string, path []string) (*model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.catalog.Vendor(vendor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, vendor)
	}
	node := v.Categories
	for _, label := range path {
		next, ok := node.Child(label)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, strings.Join(path, BreadcrumbSeparator))
		}
		node = next
	}
	return node.Clone(), nil
}

// LookupCommand 路径必须指向命令
func (s *Store) LookupCommand(vendor string, path []string) (*model.Node, error) {
	n, err := s.Lookup(vendor, path)
	if err != nil {
		return nil, err
	}
	if !n.IsCommand() {
		return nil, fmt.Errorf("%w: %s", ErrNotLeaf, strings.Join(path, BreadcrumbSeparator))
	}
	return n, nil
}

// Breadcrumb 祖先标签以 " > " 连接；空路径为 "Geral"
func Breadcrumb(path []string) string {
	if len(path) == 0 {
		return DefaultBreadcrumb
	}
	return strings.Join(path, BreadcrumbSeparator)
}

// Parse 解析目录文本
func Parse(text string) (*model.Catalog, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Msg: "documento vazio", Line: 1, Column: 1}
	}
	var c model.Catalog
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return nil, newParseError(text, err)
	}
	return &c, nil
}

// Encode 两空格缩进，不转义 HTML 与非 ASCII 字符
func Encode(c *model.Catalog) ([]byte, error) {
	compact, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsParseError 是否为目录解析错误
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// writeFile 先写临时文件再重命名，避免编辑器读到半个文件
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
