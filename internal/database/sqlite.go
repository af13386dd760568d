// Package database SQLite 存储后端（历史与收藏）
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

var (
	mu sync.RWMutex
	db *gorm.DB
)

// InitSQLite 初始化SQLite数据库
func InitSQLite(cfg config.SQLiteConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: gormLogger.New(
			logger.GetLogger(),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		// SQLite 默认对每次写操作开启事务，容易放大锁争用
		SkipDefaultTransaction: true,
	}

	// modernc.org/sqlite 以 "sqlite" 名称注册，无需 cgo
	dsn := cfg.Path + "?_pragma=busy_timeout(15000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 1
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.AutoMigrate(&HistoryRow{}, &FavoriteRow{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	mu.Lock()
	db = conn
	mu.Unlock()
	logger.Component("database").Infof("SQLite database initialized: %s", cfg.Path)
	return conn, nil
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// IsBusyError 判断是否为 SQLite 并发锁相关错误
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "sqlite_busy") ||
		strings.Contains(msg, "cannot start a transaction within a transaction")
}

// WithRetry 在检测到并发锁错误时进行短暂重试
func WithRetry(conn *gorm.DB, fn func(*gorm.DB) error, attempts int, sleep time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	if sleep <= 0 {
		sleep = 50 * time.Millisecond
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn(conn)
		if err == nil || !IsBusyError(err) {
			return err
		}
		time.Sleep(sleep)
		if sleep < 500*time.Millisecond {
			sleep *= 2
		}
	}
	return err
}

// Close 关闭数据库连接
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

// Health 检查数据库健康状态
func Health() error {
	conn := GetDB()
	if conn == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
