package fetcher

import (
	"regexp"
	"strings"
	"unicode"
)

// edgeChars 记录和单个token两端需要去掉的字符
const edgeChars = " \t\v\n\r\f."

var (
	zeroWidthRe = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}]`)
	httpsRe     = regexp.MustCompile(`^[Hh][Tt][Tt][Pp][Ss]://`)
	httpRe      = regexp.MustCompile(`^[Hh][Tt][Tt][Pp]://`)
)

// Clean 清洗单个URL:
//  1. 删除零宽字符 (U+200B..U+200D, U+FEFF)
//  2. 去掉首尾空白
//  3. 去掉末尾的 '/'
//  4. 去掉开头的 https:// (仅ASCII不区分大小写)
//  5. 去掉开头的 http:// (仅ASCII不区分大小写)
//
// 两个前缀按顺序各尝试一次, 不做大小写转换
func Clean(url string) string {
	url = zeroWidthRe.ReplaceAllString(url, "")
	url = strings.TrimFunc(url, isSpace)
	url = strings.TrimRight(url, "/")
	url = httpsRe.ReplaceAllString(url, "")
	url = httpRe.ReplaceAllString(url, "")
	return url
}

// SplitRecord 将一条记录的url字段拆分为清洗后的候选URL
// 一个字段中可能用空白连接了多个URL; 空结果和 "www" 被丢弃
func SplitRecord(raw string) []string {
	raw = strings.Trim(raw, edgeChars)

	var out []string
	for _, token := range strings.FieldsFunc(raw, isSpace) {
		cleaned := Clean(strings.Trim(token, edgeChars))
		if cleaned == "" || cleaned == "www" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// isSpace Unicode空白, 另含 U+001C..U+001F (文件/组/记录/单元分隔符)
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
