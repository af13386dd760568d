// Package backup 目录保存时写出快照（本地目录或 MinIO）
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// Writer 快照写入器
type Writer interface {
	Snapshot(ctx context.Context, name string, data []byte) (StoredObject, error)
}

// StoredObject 写入结果
type StoredObject struct {
	URI         string `json:"uri"`
	Size        int64  `json:"size"`
	Checksum    string `json:"checksum"`
	ContentType string `json:"content_type"`
}

const contentTypeJSON = "application/json; charset=utf-8"

// New 根据配置创建写入器；未启用备份时返回 nil
func New(cfg *config.Config) Writer {
	if cfg == nil || !cfg.Backup.Enabled {
		return nil
	}
	dw := &DelegatingWriter{
		backend: cfg.Backup.StorageBackend,
		local:   NewLocalWriter(cfg.ResolvePath(cfg.Backup.Local.BaseDir), cfg.Backup.Prefix, cfg.Backup.Local.MkdirIfMissing),
	}
	if dw.backend == "minio" {
		dw.minio = NewMinioWriter(cfg.Backup.Minio, cfg.Backup.Prefix)
	}
	return dw
}

// DelegatingWriter 按后端路由；MinIO 不可用时回退到本地
type DelegatingWriter struct {
	backend string
	local   *LocalWriter
	minio   *MinioWriter
}

// Snapshot 写入快照
func (w *DelegatingWriter) Snapshot(ctx context.Context, name string, data []byte) (StoredObject, error) {
	if w.backend != "minio" {
		return w.local.Snapshot(ctx, name, data)
	}
	if w.minio == nil {
		logger.Component("backup").Warn("minio backend selected but client not initialized; falling back to local")
		obj, err := w.local.Snapshot(ctx, name, data)
		if err != nil {
			return StoredObject{}, fmt.Errorf("minio client not initialized; local fallback failed: %w", err)
		}
		return obj, nil
	}
	obj, err := w.minio.Snapshot(ctx, name, data)
	if err == nil {
		return obj, nil
	}
	logger.Component("backup").Warnf("minio write failed, falling back to local: %v", err)
	obj, lerr := w.local.Snapshot(ctx, name, data)
	if lerr != nil {
		return StoredObject{}, fmt.Errorf("minio write failed: %v; local fallback failed: %w", err, lerr)
	}
	return obj, nil
}

// LocalWriter 写入本地目录：baseDir/prefix/YYYYMMDD/<name>_HHMMSS.json
type LocalWriter struct {
	baseDir string
	prefix  string
	mkdir   bool
	now     func() time.Time
}

// NewLocalWriter 创建本地写入器
func NewLocalWriter(baseDir, prefix string, mkdir bool) *LocalWriter {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "./data/backups"
	}
	return &LocalWriter{baseDir: baseDir, prefix: strings.TrimSpace(prefix), mkdir: mkdir, now: time.Now}
}

// Snapshot 写入文件
func (w *LocalWriter) Snapshot(_ context.Context, name string, data []byte) (StoredObject, error) {
	dir, file := objectPath(w.prefix, name, w.now())
	dirPath := filepath.Join(w.baseDir, filepath.FromSlash(dir))
	if w.mkdir {
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return StoredObject{}, fmt.Errorf("failed to create dir: %w", err)
		}
	}
	fullPath := filepath.Join(dirPath, file)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return StoredObject{}, fmt.Errorf("failed to write file: %w", err)
	}
	return StoredObject{
		URI:         "file://" + fullPath,
		Size:        int64(len(data)),
		Checksum:    checksum(data),
		ContentType: contentTypeJSON,
	}, nil
}

// objectPath 返回 POSIX 风格的目录与文件名
func objectPath(prefix, name string, at time.Time) (string, string) {
	parts := []string{}
	if prefix != "" {
		parts = append(parts, slug(prefix))
	}
	parts = append(parts, at.Format("20060102"))
	base := slug(name)
	if base == "" {
		base = "catalog"
	}
	base = strings.TrimSuffix(base, ".json")
	return strings.Join(parts, "/"), fmt.Sprintf("%s_%s.json", base, at.Format("150405.000"))
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

var slugRe = regexp.MustCompile(`[^a-z0-9._-]+`)

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(s)
	s = slugRe.ReplaceAllString(s, "")
	return strings.Trim(s, "._-")
}
