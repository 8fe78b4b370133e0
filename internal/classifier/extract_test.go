package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"Example.COM/path?q=1#frag", "example.com"},
		{"https://user:pw@Shop.Example.co.uk:8443/login", "shop.example.co.uk"},
		{"//example.com/x", "example.com"},
		{"ftp://files.example.org", "files.example.org"},
		{"example.com.", "example.com"},
		{"1.2.3.4:8080/admin", "1.2.3.4"},
		{"[2001:DB8::1]:443/x", "[2001:db8::1]"},
		{"example。com", "example.com"},
		{"https://ПРИКЛАД.укр/", "приклад.укр"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Host(tt.in))
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	x := NewExtractor()

	tests := []struct {
		name string
		in   string
		want Extraction
		fqdn string
	}{
		{
			name: "子域名",
			in:   "sub.bad-domain.com",
			want: Extraction{Subdomain: "sub", Domain: "bad-domain", Suffix: "com"},
			fqdn: "sub.bad-domain.com",
		},
		{
			name: "多级后缀",
			in:   "bad-domain.com.ua/path",
			want: Extraction{Domain: "bad-domain", Suffix: "com.ua"},
			fqdn: "bad-domain.com.ua",
		},
		{
			name: "用户信息和端口",
			in:   "user:pw@Shop.Example.co.uk:8443/login",
			want: Extraction{Subdomain: "shop", Domain: "example", Suffix: "co.uk"},
			fqdn: "shop.example.co.uk",
		},
		{
			name: "多级子域名",
			in:   "a.b.example.org",
			want: Extraction{Subdomain: "a.b", Domain: "example", Suffix: "org"},
			fqdn: "a.b.example.org",
		},
		{
			name: "开头的点",
			in:   ".foo.com",
			want: Extraction{Domain: "foo", Suffix: "com"},
			fqdn: "foo.com",
		},
		{
			name: "超长标签",
			in:   strings.Repeat("a", 68) + ".com",
			want: Extraction{Domain: strings.Repeat("a", 68), Suffix: "com"},
			fqdn: strings.Repeat("a", 68) + ".com",
		},
		{
			name: "不符合IDNA的Unicode主机名",
			in:   "http://мошенник_сайт.укр/",
			want: Extraction{Domain: "мошенник_сайт", Suffix: "укр"},
			fqdn: "мошенник_сайт.укр",
		},
		{
			name: "中间的空标签",
			in:   "foo..com",
			want: Extraction{Subdomain: "foo", Suffix: "com"},
		},
		{
			name: "IPv4",
			in:   "203.0.113.5",
			want: Extraction{Domain: "203.0.113.5"},
		},
		{
			name: "IPv4带端口和路径",
			in:   "203.0.113.5:8080/x",
			want: Extraction{Domain: "203.0.113.5"},
		},
		{
			name: "IPv6",
			in:   "[::1]:80",
			want: Extraction{Domain: "[::1]"},
		},
		{
			name: "无后缀",
			in:   "localhost",
			want: Extraction{Domain: "localhost"},
		},
		{
			name: "未知TLD",
			in:   "example.notarealtld",
			want: Extraction{Subdomain: "example", Domain: "notarealtld"},
		},
		{
			name: "只有后缀",
			in:   "co.uk",
			want: Extraction{Suffix: "co.uk"},
		},
		{
			name: "空",
			in:   "",
			want: Extraction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fqdn, got.FQDN())
		})
	}
}

func TestExtraction_FQDN(t *testing.T) {
	assert.Equal(t, "", Extraction{Domain: "x"}.FQDN())
	assert.Equal(t, "", Extraction{Suffix: "com"}.FQDN())
	assert.Equal(t, "x.com", Extraction{Domain: "x", Suffix: "com"}.FQDN())
}
