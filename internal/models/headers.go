package models

import (
	"fmt"
	"net/http"
	"strings"
)

// HeaderConfig headers.yaml的结构
type HeaderConfig struct {
	// Headers 自定义请求头, 如 "User-Agent": "ema-blocklist/1.0"
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
}

// CliHeaders 命令行 -H 传入的头部, 每项格式为 "Name: Value"
type CliHeaders []string

// Parse 解析为 http.Header
func (ch CliHeaders) Parse() (http.Header, error) {
	result := make(http.Header)
	for i, s := range ch {
		name, value, err := parseHeaderString(s)
		if err != nil {
			return nil, fmt.Errorf("--header #%d: %w", i+1, err)
		}
		result.Set(name, value)
	}
	return result, nil
}

func parseHeaderString(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("missing ':' separator, want 'Name: Value'")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("header name must not be empty")
	}
	return name, strings.TrimSpace(value), nil
}

// HeaderProvider 提供拉取请求使用的HTTP头部
// 返回的头部已按 默认 < 配置文件 < 命令行 合并
type HeaderProvider interface {
	GetHeaders() (http.Header, error)
}

// ValidationError 头部校验失败
type ValidationError struct {
	Field      string // "name" 或 "value"
	HeaderName string
	Reason     string
	Suggestion string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid header [%s]: %s", e.HeaderName, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return msg
}

// ConfigError 配置文件解析失败
type ConfigError struct {
	FilePath string
	Cause    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config file [%s]: %v", e.FilePath, e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
