package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Paths       PathsConfig       `mapstructure:"paths"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Backup      BackupConfig      `mapstructure:"backup"`
	Firmware    FirmwareConfig    `mapstructure:"firmware"`
	History     HistoryConfig     `mapstructure:"history"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Watch       WatchConfig       `mapstructure:"watch"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PathsConfig 数据文件路径；相对路径基于 BaseDir 解析
type PathsConfig struct {
	BaseDir     string `mapstructure:"base_dir"`
	Catalog     string `mapstructure:"catalog"`
	History     string `mapstructure:"history"`
	Favorites   string `mapstructure:"favorites"`
	Preferences string `mapstructure:"preferences"`
	// VendorPacks YAML 厂商命令包目录，为空则不加载
	VendorPacks string `mapstructure:"vendor_packs"`
}

// StorageConfig 历史与收藏的存储后端
type StorageConfig struct {
	// Backend json | sqlite
	Backend string       `mapstructure:"backend"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig SQLite配置
type SQLiteConfig struct {
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// BackupConfig 目录快照备份配置
type BackupConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// StorageBackend 存储后端：local | minio
	StorageBackend string            `mapstructure:"storage_backend"`
	Prefix         string            `mapstructure:"prefix"`
	Local          LocalBackupConfig `mapstructure:"local"`
	Minio          MinioConfig       `mapstructure:"minio"`
}

// LocalBackupConfig 本地存储配置
type LocalBackupConfig struct {
	BaseDir        string `mapstructure:"base_dir"`
	MkdirIfMissing bool   `mapstructure:"mkdir_if_missing"`
}

// MinioConfig 对象存储配置
type MinioConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Secure    bool   `mapstructure:"secure"`
}

// FirmwarePreset ONU 型号与固件文件的对应关系
type FirmwarePreset struct {
	Model string `mapstructure:"model"`
	File  string `mapstructure:"file"`
}

// FirmwareConfig 固件预设（列表形式，避免 viper 将型号键转为小写）
type FirmwareConfig struct {
	Presets      []FirmwarePreset `mapstructure:"presets"`
	DefaultModel string           `mapstructure:"default_model"`
}

// HistoryConfig 历史记录配置
type HistoryConfig struct {
	RecentLimit int `mapstructure:"recent_limit"`
}

// PreferencesConfig 偏好保存配置
type PreferencesConfig struct {
	// SaveDelay 偏好变更后的延迟保存时间
	SaveDelay time.Duration `mapstructure:"save_delay"`
}

// WatchConfig 目录文件监听配置
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

var globalConfig *Config

// Load 加载配置文件；未指定路径且找不到默认配置时仅使用默认值与环境变量
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 设置默认值
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	// 设置环境变量前缀
	v.SetEnvPrefix("OLTCMD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&config)

	globalConfig = &config
	return &config, nil
}

// Default 仅由默认值构成的配置（测试与无配置文件场景）
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	normalize(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8088)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	// 与旧版桌面程序一致的文件名
	v.SetDefault("paths.base_dir", "")
	v.SetDefault("paths.catalog", "olt_data.json")
	v.SetDefault("paths.history", "command_history.json")
	v.SetDefault("paths.favorites", "favorites.json")
	v.SetDefault("paths.preferences", "user_preferences.json")
	v.SetDefault("paths.vendor_packs", "")

	v.SetDefault("storage.backend", "json")
	v.SetDefault("storage.sqlite.path", "oltcmd.db")
	v.SetDefault("storage.sqlite.max_idle_conns", 1)
	v.SetDefault("storage.sqlite.max_open_conns", 1)
	v.SetDefault("storage.sqlite.conn_max_lifetime", time.Hour)

	// 备份默认关闭；开启后每次保存目录写出快照
	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.storage_backend", "local")
	v.SetDefault("backup.prefix", "catalog")
	v.SetDefault("backup.local.base_dir", "./data/backups")
	v.SetDefault("backup.local.mkdir_if_missing", true)
	v.SetDefault("backup.minio.port", 9000)
	v.SetDefault("backup.minio.bucket", "oltcmd")

	v.SetDefault("firmware.presets", []map[string]string{
		{"model": "ZTE F601", "file": "F601P1N34.bin"},
		{"model": "ONU FAST", "file": "F10-G10-NW_1.6.0.bin"},
	})
	v.SetDefault("firmware.default_model", "ZTE F601")

	v.SetDefault("history.recent_limit", 20)
	v.SetDefault("preferences.save_delay", time.Second)

	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.debounce", 300*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "./logs/oltcmd.log")
	v.SetDefault("log.max_size", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
}

// normalize 统一大小写与空值
func normalize(cfg *Config) {
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "json"
	}
	cfg.Backup.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.Backup.StorageBackend))
	if cfg.History.RecentLimit <= 0 {
		cfg.History.RecentLimit = 20
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Firmware.DefaultModel) == "" && len(cfg.Firmware.Presets) > 0 {
		cfg.Firmware.DefaultModel = cfg.Firmware.Presets[0].Model
	}
}

// Get 获取全局配置
func Get() *Config {
	return globalConfig
}

// GetServerAddr 获取服务器地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// FirmwareMap 型号 → 固件文件
func (c *Config) FirmwareMap() map[string]string {
	out := make(map[string]string, len(c.Firmware.Presets))
	for _, p := range c.Firmware.Presets {
		out[p.Model] = p.File
	}
	return out
}

// BaseDir 数据文件根目录：配置优先；从编译产物运行时取可执行文件所在目录，否则取工作目录
func (c *Config) BaseDir() string {
	if d := strings.TrimSpace(c.Paths.BaseDir); d != "" {
		return d
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		// go run / go test 产物位于临时目录
		if !strings.HasPrefix(dir, os.TempDir()) && !strings.Contains(dir, "go-build") {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ResolvePath 将相对路径解析到 BaseDir 下
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), p)
}
