package utils

import "time"

// TimestampLayout 写入日志的UTC时间格式, 如 17_Oct_2026_08_05_09-UTC
const TimestampLayout = "02_Jan_2006_15_04_05-UTC"

// now 测试中可替换
var now = time.Now

// FormatTimestamp 将时间转换为UTC并按TimestampLayout格式化
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CurrentTimestamp 当前UTC时间字符串
func CurrentTimestamp() string {
	return FormatTimestamp(now())
}
