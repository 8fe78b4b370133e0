package models

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ValidateEndpoint 验证接口地址
func ValidateEndpoint(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("endpoint must contain a host")
	}
	return nil
}

// generateID 生成唯一ID
func generateID() string {
	return uuid.New().String()
}
