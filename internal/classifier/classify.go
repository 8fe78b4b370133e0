package classifier

import (
	"net/netip"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
)

// Progress 每处理一个URL调用一次
type Progress interface {
	Add(n int) error
}

type options struct {
	extractor *Extractor
	progress  Progress
}

// Option 分类选项
type Option func(*options)

// WithExtractor 使用指定的拆分器
func WithExtractor(x *Extractor) Option {
	return func(o *options) {
		o.extractor = x
	}
}

// WithProgress 报告进度
func WithProgress(p Progress) Option {
	return func(o *options) {
		o.progress = p
	}
}

// Classify 将清洗后的URL分为 IPv4 / 含FQDN的URL / 其他(丢弃)
//
// 规则(按顺序):
//   - 有Domain而无FQDN: Domain是合法IPv4则加入IPs, 否则丢弃
//   - 有FQDN: 原始URL加入FQDNURLs, FQDN加入FQDNs
//   - 其他: 丢弃
func Classify(urls models.URLSet, opts ...Option) *models.Blocklists {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.extractor == nil {
		o.extractor = NewExtractor()
	}

	out := models.NewBlocklists()
	for url := range urls {
		classifyOne(o.extractor, url, out)
		if o.progress != nil {
			_ = o.progress.Add(1)
		}
	}
	return out
}

func classifyOne(x *Extractor, url string, out *models.Blocklists) {
	ext := x.Extract(url)
	domain, fqdn := ext.Domain, ext.FQDN()

	switch {
	case domain != "" && fqdn == "":
		if IsIPv4(domain) {
			out.IPs.Add(domain)
			return
		}
		out.Discarded++
	case fqdn != "":
		out.FQDNURLs.Add(url)
		out.FQDNs.Add(fqdn)
	default:
		out.Discarded++
	}
}

// IsIPv4 严格的点分十进制IPv4 (不允许前导零、IPv6及IPv4映射地址)
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
