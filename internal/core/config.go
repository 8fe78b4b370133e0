package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RecoveryAshes/ema-blocklist/internal/fetcher"
	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀, 如 EMABLOCKLIST_FETCH_ENDPOINT
const EnvPrefix = "EMABLOCKLIST"

// Config 应用程序配置
type Config struct {
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// FetchConfig 拉取配置
type FetchConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Count    int           `mapstructure:"count"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	NoColor  bool           `mapstructure:"no_color"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	Progress  bool   `mapstructure:"progress"`
	Report    bool   `mapstructure:"report"`
	ReportDir string `mapstructure:"report_dir"`
}

// LoadConfig 加载配置文件; configPath为空时搜索默认位置, 找不到则使用默认值
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".emablocklist"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ConfigError{FilePath: configPath, Cause: err}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{FilePath: v.ConfigFileUsed(), Cause: err}
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.endpoint", fetcher.DefaultEndpoint)
	v.SetDefault("fetch.count", fetcher.DefaultCount)
	v.SetDefault("fetch.timeout", fetcher.DefaultTimeout)

	def := utils.DefaultLogConfig()
	v.SetDefault("logging.level", def.Level)
	v.SetDefault("logging.log_dir", def.LogDir)
	v.SetDefault("logging.no_color", def.NoColor)
	v.SetDefault("logging.rotation.max_size", def.MaxSize)
	v.SetDefault("logging.rotation.max_backups", def.MaxBackups)
	v.SetDefault("logging.rotation.max_age", def.MaxAge)
	v.SetDefault("logging.rotation.compress", def.Compress)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.progress", false)
	v.SetDefault("output.report", false)
	v.SetDefault("output.report_dir", "reports")
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := models.ValidateEndpoint(c.Fetch.Endpoint); err != nil {
		return err
	}
	if c.Fetch.Count < 1 {
		return fmt.Errorf("fetch.count must be >= 1, got %d", c.Fetch.Count)
	}
	if c.Fetch.Timeout < time.Second || c.Fetch.Timeout > 10*time.Minute {
		return fmt.Errorf("fetch.timeout must be between 1s and 10m, got %s", c.Fetch.Timeout)
	}
	return nil
}

// LogConfig 转换为日志系统配置
func (c *Config) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Logging.Level,
		LogDir:     c.Logging.LogDir,
		NoColor:    c.Logging.NoColor,
		MaxSize:    c.Logging.Rotation.MaxSize,
		MaxBackups: c.Logging.Rotation.MaxBackups,
		MaxAge:     c.Logging.Rotation.MaxAge,
		Compress:   c.Logging.Rotation.Compress,
	}
}
