package core

import (
	"net/http"

	"github.com/RecoveryAshes/ema-blocklist/internal/config"
	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
)

// DefaultUserAgent 默认User-Agent
const DefaultUserAgent = "ema-blocklist/1.0 (+https://www.ema.com.ua/citizens/blacklist)"

// HeaderManager 合并拉取请求的HTTP头部, 实现 models.HeaderProvider
// 优先级: 默认 < headers.yaml < 命令行
type HeaderManager struct {
	defaults http.Header
	config   http.Header
	cli      http.Header

	validator    *utils.HeaderValidator
	configLoader *config.HeaderConfigLoader
	loaded       bool
}

// NewHeaderManager 创建头部管理器
//   - headersFile: headers.yaml路径, 为空时使用 configs/headers.yaml
//   - cliHeaders: 命令行 -H 参数
func NewHeaderManager(headersFile string, cliHeaders []string) (*HeaderManager, error) {
	hm := &HeaderManager{
		defaults:     defaultHeaders(),
		config:       make(http.Header),
		cli:          make(http.Header),
		validator:    utils.NewHeaderValidator(),
		configLoader: config.NewHeaderConfigLoader(headersFile),
	}

	if len(cliHeaders) > 0 {
		parsed, err := models.CliHeaders(cliHeaders).Parse()
		if err != nil {
			return nil, err
		}
		hm.cli = parsed
	}

	return hm, nil
}

func defaultHeaders() http.Header {
	return http.Header{
		"User-Agent":      []string{DefaultUserAgent},
		"Accept":          []string{"application/json"},
		"Accept-Encoding": []string{"gzip, deflate, br"},
	}
}

// ConfigLoader 头部配置文件加载器
func (hm *HeaderManager) ConfigLoader() *config.HeaderConfigLoader {
	return hm.configLoader
}

// LoadConfig 加载headers.yaml, 只加载一次
func (hm *HeaderManager) LoadConfig() error {
	if hm.loaded {
		return nil
	}

	headerConfig, err := hm.configLoader.LoadConfig()
	if err != nil {
		return err
	}

	hm.config = make(http.Header)
	for name, value := range headerConfig.Headers {
		hm.config.Set(name, value)
	}
	hm.loaded = true

	if len(hm.config) > 0 {
		utils.Debugf("loaded %d headers from %s: %s",
			len(hm.config), hm.configLoader.Path(), utils.RedactToString(hm.config))
	}
	return nil
}

// Validate 依次校验默认、配置文件和命令行头部
func (hm *HeaderManager) Validate() error {
	for _, h := range []http.Header{hm.defaults, hm.config, hm.cli} {
		if err := hm.validator.Validate(h); err != nil {
			return err
		}
	}
	return nil
}

// GetMergedHeaders 按优先级合并
func (hm *HeaderManager) GetMergedHeaders() http.Header {
	result := make(http.Header)
	for _, h := range []http.Header{hm.defaults, hm.config, hm.cli} {
		for name, values := range h {
			result[name] = values
		}
	}
	return result
}

// GetSafeHeaders 脱敏后的合并头部, 用于日志
func (hm *HeaderManager) GetSafeHeaders() map[string]string {
	return utils.RedactHeaders(hm.GetMergedHeaders())
}

// GetHeaders 实现 models.HeaderProvider
func (hm *HeaderManager) GetHeaders() (http.Header, error) {
	if err := hm.LoadConfig(); err != nil {
		return nil, err
	}
	if err := hm.Validate(); err != nil {
		return nil, err
	}
	return hm.GetMergedHeaders(), nil
}
