package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu  sync.RWMutex
	log *logrus.Logger
)

// Config 日志配置
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	// Output console | file | both | none；console 写到 stderr，避免污染 CLI 输出
	Output     string `json:"output"`
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"`
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"`
	Compress   bool   `json:"compress"`
}

// Init 初始化日志
func Init(config Config) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:   "2006-01-02 15:04:05",
			DisableHTMLEscape: true, // 命令模板中含 <> 等字符
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	var writers []io.Writer
	switch config.Output {
	case "none":
		writers = append(writers, io.Discard)
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
		if config.Output == "both" {
			writers = append(writers, os.Stderr)
		}
	default:
		writers = append(writers, os.Stderr)
	}
	l.SetOutput(io.MultiWriter(writers...))

	mu.Lock()
	log = l
	mu.Unlock()
	return nil
}

// SetOutput 替换输出目标（测试中捕获日志）
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// GetLogger 获取日志实例
func GetLogger() *logrus.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	return log
}

// Debugf 格式化调试日志
func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

// Info 信息日志
func Info(args ...interface{}) {
	GetLogger().Info(args...)
}

// Infof 格式化信息日志
func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

// Warnf 格式化警告日志
func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

// Errorf 格式化错误日志
func Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}

// Fatalf 格式化致命错误日志
func Fatalf(format string, args ...interface{}) {
	GetLogger().Fatalf(format, args...)
}

// WithField 添加字段
func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// Component 带组件名的日志入口
func Component(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}
