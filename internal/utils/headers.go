package utils

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
)

// MaxHeaderValueLength 头部值最大长度 (8KB)
const MaxHeaderValueLength = 8192

var (
	// ForbiddenHeaders 由HTTP客户端管理的头部, 不允许自定义
	ForbiddenHeaders = []string{"Host", "Content-Length", "Transfer-Encoding", "Connection"}

	// SensitiveKeywords 名称包含这些关键字的头部在日志中脱敏
	SensitiveKeywords = []string{"authorization", "token", "key", "secret", "password", "credential", "cookie"}

	headerNameRe  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	headerValueRe = regexp.MustCompile(`^[\x20-\x7E\t]*$`)
)

// HeaderValidator 按RFC 7230校验头部名称和值
type HeaderValidator struct {
	maxValueLength int
	forbidden      map[string]bool
}

// NewHeaderValidator 创建校验器
func NewHeaderValidator() *HeaderValidator {
	forbidden := make(map[string]bool, len(ForbiddenHeaders))
	for _, h := range ForbiddenHeaders {
		forbidden[strings.ToLower(h)] = true
	}
	return &HeaderValidator{
		maxValueLength: MaxHeaderValueLength,
		forbidden:      forbidden,
	}
}

// IsForbidden 不区分大小写
func (hv *HeaderValidator) IsForbidden(name string) bool {
	return hv.forbidden[strings.ToLower(name)]
}

// ValidateHeader 校验单个头部
func (hv *HeaderValidator) ValidateHeader(name, value string) error {
	switch {
	case hv.IsForbidden(name):
		return &models.ValidationError{
			Field:      "name",
			HeaderName: name,
			Reason:     "header is managed by the HTTP client",
			Suggestion: fmt.Sprintf("remove %q from the configuration", name),
		}
	case name == "":
		return &models.ValidationError{Field: "name", Reason: "header name must not be empty"}
	case !headerNameRe.MatchString(name):
		return &models.ValidationError{
			Field:      "name",
			HeaderName: name,
			Reason:     "header name may only contain letters, digits and '-'",
		}
	case len(value) > hv.maxValueLength:
		return &models.ValidationError{
			Field:      "value",
			HeaderName: name,
			Reason:     fmt.Sprintf("value too long: %d bytes (max %d)", len(value), hv.maxValueLength),
		}
	case !headerValueRe.MatchString(value):
		return &models.ValidationError{
			Field:      "value",
			HeaderName: name,
			Reason:     "value may only contain printable ASCII",
			Suggestion: "remove control and non-ASCII characters",
		}
	}
	return nil
}

// Validate 返回第一个不合法的头部
func (hv *HeaderValidator) Validate(headers http.Header) error {
	for name, values := range headers {
		for _, value := range values {
			if err := hv.ValidateHeader(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsSensitiveHeader 根据名称判断是否需要脱敏
func IsSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range SensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// RedactHeaderValue 脱敏单个头部值
func RedactHeaderValue(name, value string) string {
	if !IsSensitiveHeader(name) {
		return value
	}
	if strings.HasPrefix(value, "Bearer ") {
		return "Bearer ***"
	}
	if len(value) > 8 {
		return value[:4] + "***" + value[len(value)-4:]
	}
	return "***"
}

// RedactHeaders 返回可写入日志的头部(每个头部只取第一个值)
func RedactHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for name, values := range headers {
		if len(values) == 0 {
			continue
		}
		result[name] = RedactHeaderValue(name, values[0])
	}
	return result
}

// RedactToString 格式: "A: x, B: y", 按名称排序
func RedactToString(headers http.Header) string {
	redacted := RedactHeaders(headers)
	names := make([]string, 0, len(redacted))
	for name := range redacted {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+redacted[name])
	}
	return strings.Join(parts, ", ")
}
