package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/spf13/viper"
)

const (
	// DefaultHeadersFile 默认头部配置文件路径
	DefaultHeadersFile = "configs/headers.yaml"

	// MaxConfigFileSize 配置文件最大大小 (1MB)
	MaxConfigFileSize = 1 * 1024 * 1024
)

//go:embed headers_template.yaml
var defaultHeaderTemplate string

// HeaderConfigLoader 加载headers.yaml
type HeaderConfigLoader struct {
	configPath string
}

// NewHeaderConfigLoader 创建加载器, configPath为空时使用DefaultHeadersFile
func NewHeaderConfigLoader(configPath string) *HeaderConfigLoader {
	if configPath == "" {
		configPath = DefaultHeadersFile
	}
	return &HeaderConfigLoader{configPath: configPath}
}

// Path 配置文件路径
func (hcl *HeaderConfigLoader) Path() string {
	return hcl.configPath
}

// EnsureConfigExists 文件不存在时写入模板
// 返回: 是否新建了文件
func (hcl *HeaderConfigLoader) EnsureConfigExists() (bool, error) {
	if _, err := os.Stat(hcl.configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	dir := filepath.Dir(hcl.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("create config dir [%s]: %w", dir, err)
	}
	if err := os.WriteFile(hcl.configPath, []byte(defaultHeaderTemplate), 0644); err != nil {
		return false, fmt.Errorf("write config template [%s]: %w", hcl.configPath, err)
	}
	return true, nil
}

// LoadConfig 解析headers.yaml; 文件不存在时返回空配置, 不自动创建
func (hcl *HeaderConfigLoader) LoadConfig() (*models.HeaderConfig, error) {
	info, err := os.Stat(hcl.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return &models.HeaderConfig{Headers: make(map[string]string)}, nil
	}
	if err != nil {
		return nil, &models.ConfigError{FilePath: hcl.configPath, Cause: err}
	}
	if info.Size() > MaxConfigFileSize {
		return nil, &models.ConfigError{
			FilePath: hcl.configPath,
			Cause:    fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), MaxConfigFileSize),
		}
	}

	v := viper.New()
	v.SetConfigFile(hcl.configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, &models.ConfigError{FilePath: hcl.configPath, Cause: err}
	}

	var config models.HeaderConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{FilePath: hcl.configPath, Cause: err}
	}
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}
	return &config, nil
}
