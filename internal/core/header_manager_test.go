package core

import (
	"os"
	"path/filepath"
	"testing"
)

func missingHeadersFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "headers.yaml")
}

func TestHeaderManager_GetMergedHeaders(t *testing.T) {
	t.Run("默认头部存在", func(t *testing.T) {
		hm, err := NewHeaderManager(missingHeadersFile(t), nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		headers := hm.GetMergedHeaders()
		if headers.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("User-Agent = %q", headers.Get("User-Agent"))
		}
		if headers.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", headers.Get("Accept"))
		}
		if headers.Get("Accept-Encoding") != "gzip, deflate, br" {
			t.Errorf("Accept-Encoding = %q", headers.Get("Accept-Encoding"))
		}
	})

	t.Run("命令行头部覆盖默认", func(t *testing.T) {
		hm, err := NewHeaderManager(missingHeadersFile(t), []string{"User-Agent: CustomBot/1.0"})
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}

		if got := hm.GetMergedHeaders().Get("User-Agent"); got != "CustomBot/1.0" {
			t.Errorf("User-Agent = %q, want CustomBot/1.0", got)
		}
	})
}

func TestHeaderManager_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.yaml")
	content := "headers:\n  User-Agent: \"FileBot/1.0\"\n  X-Custom: \"from-file\"\n  Accept-Language: \"uk-UA\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	hm, err := NewHeaderManager(path, []string{"X-Custom: from-cli"})
	if err != nil {
		t.Fatalf("创建HeaderManager失败: %v", err)
	}

	headers, err := hm.GetHeaders()
	if err != nil {
		t.Fatalf("GetHeaders失败: %v", err)
	}

	tests := map[string]string{
		"User-Agent":      "FileBot/1.0",
		"X-Custom":        "from-cli",
		"Accept-Language": "uk-UA",
		"Accept":          "application/json",
	}
	for name, want := range tests {
		if got := headers.Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestHeaderManager_GetSafeHeaders(t *testing.T) {
	hm, err := NewHeaderManager(missingHeadersFile(t), []string{
		"User-Agent: CustomBot/1.0",
		"Authorization: Bearer secret-token-12345",
		"X-API-Key: api-key-67890",
	})
	if err != nil {
		t.Fatalf("创建HeaderManager失败: %v", err)
	}

	safe := hm.GetSafeHeaders()
	if safe["User-Agent"] != "CustomBot/1.0" {
		t.Error("普通头部不应该被脱敏")
	}
	if safe["Authorization"] != "Bearer ***" {
		t.Errorf("Authorization = %q, want 'Bearer ***'", safe["Authorization"])
	}
	if safe["X-Api-Key"] == "api-key-67890" {
		t.Error("X-API-Key应该被脱敏")
	}
}

func TestHeaderManager_GetHeaders(t *testing.T) {
	t.Run("非法命令行参数返回错误", func(t *testing.T) {
		if _, err := NewHeaderManager(missingHeadersFile(t), []string{"InvalidFormat"}); err == nil {
			t.Error("期望返回错误, 但成功了")
		}
	})

	t.Run("禁止头部返回验证错误", func(t *testing.T) {
		hm, err := NewHeaderManager(missingHeadersFile(t), []string{"Host: example.com"})
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}
		if _, err := hm.GetHeaders(); err == nil {
			t.Error("期望返回验证错误, 但成功了")
		}
	})

	t.Run("配置文件中的禁止头部", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "headers.yaml")
		if err := os.WriteFile(path, []byte("headers:\n  Connection: close\n"), 0644); err != nil {
			t.Fatal(err)
		}
		hm, err := NewHeaderManager(path, nil)
		if err != nil {
			t.Fatalf("创建HeaderManager失败: %v", err)
		}
		if _, err := hm.GetHeaders(); err == nil {
			t.Error("期望返回验证错误, 但成功了")
		}
	})
}
