package classifier

import (
	"net/netip"
	"strings"
	"unicode"

	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/idna"
)

// Extraction 主机名拆分结果
// 例如 sub.bad-domain.com -> {Subdomain: "sub", Domain: "bad-domain", Suffix: "com"}
type Extraction struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// FQDN 完整主机名; 没有公共后缀或可注册标签时为空
func (e Extraction) FQDN() string {
	if e.Suffix == "" || e.Domain == "" {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Subdomain, e.Domain, e.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// Extractor 基于公共后缀列表拆分主机名
// 只使用ICANN部分, 不使用默认的 "*" 规则: 未收录的TLD不算后缀
type Extractor struct {
	list    *publicsuffix.List
	options *publicsuffix.FindOptions
}

// NewExtractor 使用内置的公共后缀列表
func NewExtractor() *Extractor {
	return NewExtractorWithList(publicsuffix.DefaultList)
}

// NewExtractorWithList 使用指定的公共后缀列表
func NewExtractorWithList(list *publicsuffix.List) *Extractor {
	return &Extractor{
		list: list,
		options: &publicsuffix.FindOptions{
			IgnorePrivate: true,
			DefaultRule:   nil,
		},
	}
}

// Extract 从URL(可带协议、路径、端口、用户信息)中拆分主机名
func (x *Extractor) Extract(rawURL string) Extraction {
	host := Host(rawURL)
	if host == "" {
		return Extraction{}
	}

	// 方括号IPv6: 整体作为Domain, 无后缀
	if strings.HasPrefix(host, "[") {
		return Extraction{Domain: host}
	}

	if addr, err := netip.ParseAddr(host); err == nil && addr.Is4() {
		return Extraction{Domain: host}
	}

	labels := strings.Split(host, ".")
	suffixLabels := x.suffixLabels(host)

	switch {
	case suffixLabels == 0:
		// 没有匹配的后缀: 最后一个标签视为Domain
		return Extraction{
			Subdomain: strings.Join(labels[:len(labels)-1], "."),
			Domain:    labels[len(labels)-1],
		}
	case suffixLabels >= len(labels):
		// 主机名本身就是公共后缀
		return Extraction{Suffix: host}
	}

	i := len(labels) - suffixLabels
	return Extraction{
		Subdomain: strings.Join(labels[:i-1], "."),
		Domain:    labels[i-1],
		Suffix:    strings.Join(labels[i:], "."),
	}
}

// suffixLabels 公共后缀包含的标签数, 0表示未匹配
// 不校验DNS语法: 空标签、超长标签照常查找
// 非ASCII主机名依次按IDNA、宽松punycode和原始形式查找
func (x *Extractor) suffixLabels(host string) int {
	names := []string{host}
	if !isASCII(host) {
		names = names[:0]
		if ascii, err := idna.Lookup.ToASCII(host); err == nil {
			names = append(names, ascii)
		} else if ascii, err := idna.Punycode.ToASCII(host); err == nil {
			names = append(names, ascii)
		}
		names = append(names, host)
	}

	for _, name := range names {
		if n := x.matchSuffix(name); n > 0 {
			return n
		}
	}
	return 0
}

// matchSuffix 按匹配到的规则计算后缀标签数
func (x *Extractor) matchSuffix(name string) int {
	rule := x.list.Find(name, x.options)
	if rule == nil {
		return 0
	}

	n := strings.Count(rule.Value, ".") + 1
	switch rule.Type {
	case publicsuffix.WildcardType:
		n++
	case publicsuffix.ExceptionType:
		n--
	}
	if labels := strings.Count(name, ".") + 1; n > labels {
		n = labels
	}
	return n
}

// Host 从URL中取出小写的主机名
// 依次去掉协议、路径/查询/片段、用户信息、端口和末尾的点
func Host(rawURL string) string {
	s := stripScheme(strings.TrimFunc(rawURL, unicode.IsSpace))

	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		s = s[i+1:]
	}

	if strings.HasPrefix(s, "[") {
		if i := strings.IndexByte(s, ']'); i >= 0 {
			return strings.ToLower(s[:i+1])
		}
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}

	s = strings.NewReplacer("。", ".", "．", ".", "｡", ".").Replace(s)
	s = strings.TrimFunc(s, unicode.IsSpace)
	s = strings.TrimRight(s, ".")
	return strings.ToLower(s)
}

// stripScheme 去掉 "scheme://" 或开头的 "//"
func stripScheme(s string) string {
	i := strings.Index(s, "//")
	switch {
	case i == 0:
		return s[2:]
	case i < 2 || s[i-1] != ':':
		return s
	}
	for _, r := range s[:i-1] {
		if !isSchemeChar(r) {
			return s
		}
	}
	return s[i+2:]
}

func isSchemeChar(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '-' || r == '.')
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
