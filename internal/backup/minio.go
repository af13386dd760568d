package backup

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// MinioWriter MinIO 对象存储写入
type MinioWriter struct {
	client   *minio.Client
	endpoint string
	bucket   string
	prefix   string
	now      func() time.Time

	mu            sync.Mutex
	bucketEnsured bool
}

// NewMinioWriter 创建客户端；配置不完整时返回 nil
func NewMinioWriter(cfg config.MinioConfig, prefix string) *MinioWriter {
	host := strings.TrimSpace(cfg.Host)
	if host == "" || cfg.Port <= 0 {
		logger.Component("backup").Warn("minio configuration incomplete; host/port missing")
		return nil
	}
	endpoint := fmt.Sprintf("%s:%d", host, cfg.Port)

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.Secure,
		Transport: transport,
	})
	if err != nil {
		logger.Component("backup").Errorf("minio client initialization failed: %v", err)
		return nil
	}
	return &MinioWriter{
		client:   client,
		endpoint: endpoint,
		bucket:   strings.TrimSpace(cfg.Bucket),
		prefix:   strings.TrimSpace(prefix),
		now:      time.Now,
	}
}

// Snapshot 上传快照对象
func (w *MinioWriter) Snapshot(ctx context.Context, name string, data []byte) (StoredObject, error) {
	if w == nil || w.client == nil {
		return StoredObject{}, fmt.Errorf("minio client not initialized")
	}
	if w.bucket == "" {
		return StoredObject{}, fmt.Errorf("minio bucket not configured")
	}
	if err := w.fastConnectivityCheck(ctx); err != nil {
		return StoredObject{}, fmt.Errorf("minio connectivity failed to %s: %w", w.endpoint, err)
	}
	if err := w.ensureBucket(ctx); err != nil {
		return StoredObject{}, fmt.Errorf("minio ensure bucket failed: %w", err)
	}

	dir, file := objectPath(w.prefix, name, w.now())
	objectName := path.Join(dir, file)

	var lastErr error
	for _, wait := range []time.Duration{time.Second, 2 * time.Second} {
		putCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := w.client.PutObject(putCtx, w.bucket, objectName, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentTypeJSON})
		cancel()
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return StoredObject{}, ctx.Err()
		case <-time.After(wait):
		}
	}
	if lastErr != nil {
		return StoredObject{}, fmt.Errorf("minio put object failed after retries: %w", lastErr)
	}
	return StoredObject{
		URI:         "minio://" + path.Join(w.bucket, objectName),
		Size:        int64(len(data)),
		Checksum:    checksum(data),
		ContentType: contentTypeJSON,
	}, nil
}

// fastConnectivityCheck 使用 TCP 直连做快速连通性校验
func (w *MinioWriter) fastConnectivityCheck(parent context.Context) error {
	d := &net.Dialer{Timeout: 3 * time.Second}
	conn, err := d.DialContext(parent, "tcp", w.endpoint)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (w *MinioWriter) ensureBucket(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.bucketEnsured {
		return nil
	}
	exists, err := w.client.BucketExists(ctx, w.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := w.client.MakeBucket(ctx, w.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	w.bucketEnsured = true
	return nil
}
