package models

import (
	"net/netip"
	"sort"
)

// URLSet 去重后的字符串集合
type URLSet map[string]struct{}

// NewURLSet 由若干字符串创建集合
func NewURLSet(items ...string) URLSet {
	s := make(URLSet, len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add 添加元素
func (s URLSet) Add(item string) {
	s[item] = struct{}{}
}

// Has 是否包含元素
func (s URLSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len 元素个数
func (s URLSet) Len() int {
	return len(s)
}

// Sorted 按字节序(码点序)排序,不做大小写归一
func (s URLSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// SortedIPv4 按IPv4地址数值排序
// 集合中只应包含合法的点分十进制地址; 无法解析的元素排在最后并按字符串排序
func (s URLSet) SortedIPv4() []string {
	out := s.Sorted()
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := netip.ParseAddr(out[i])
		b, errB := netip.ParseAddr(out[j])
		switch {
		case errA != nil && errB != nil:
			return false
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.Less(b)
	})
	return out
}

// Blocklists 一次分类得到的三个集合
//   - IPs: IPv4地址
//   - FQDNURLs: 含FQDN的原始URL
//   - FQDNs: 从URL中提取的FQDN(小写)
//
// FQDNURLs与FQDNs同步写入,IPs与二者互斥
type Blocklists struct {
	IPs      URLSet
	FQDNURLs URLSet
	FQDNs    URLSet

	// Discarded 既非域名也非IPv4而被丢弃的URL数量
	Discarded int
}

// NewBlocklists 创建空的分类结果
func NewBlocklists() *Blocklists {
	return &Blocklists{
		IPs:      make(URLSet),
		FQDNURLs: make(URLSet),
		FQDNs:    make(URLSet),
	}
}

// IsEmpty IP和非IP集合是否均为空
func (b *Blocklists) IsEmpty() bool {
	return b == nil || (b.IPs.Len() == 0 && b.FQDNURLs.Len() == 0)
}
