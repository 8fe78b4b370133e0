package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"https前缀和末尾斜杠", "https://Example.com/", "Example.com"},
		{"大写HTTP前缀", "HTTP://foo.bar//", "foo.bar"},
		{"https后仍有http", "https://http://foo.bar", "foo.bar"},
		{"混合大小写", "hTtPs://foo.bar", "foo.bar"},
		{"非ASCII的长s不算协议", "http\u017f://foo.com", "http\u017f://foo.com"},
		{"零宽字符", "foo\u200bbar", "foobar"},
		{"BOM和零宽连接符", "\ufefffoo\u200d.com", "foo.com"},
		{"首尾空白", " \t example.com \n", "example.com"},
		{"保留路径", "http://example.com/login/", "example.com/login"},
		{"不转小写", "Example.COM", "Example.COM"},
		{"只有斜杠", "///", ""},
		{"空字符串", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"单个URL", "https://bad-domain.com/", []string{"bad-domain.com"}},
		{"空白分隔的多个URL", "a.com b.com\tc.com\nd.com", []string{"a.com", "b.com", "c.com", "d.com"}},
		{"token两端的点", ".a.com. b.com.", []string{"a.com", "b.com"}},
		{"过滤www", "www www.a.com", []string{"www.a.com"}},
		{"大写WWW保留", "WWW", []string{"WWW"}},
		{"清洗后为空", "/ //", nil},
		{"分隔符U+001E", "a.com\x1eb.com", []string{"a.com", "b.com"}},
		{"只有空白和点", " . \n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRecord(tt.in))
		})
	}
}
